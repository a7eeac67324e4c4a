package fields_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/testsupport"
)

func newCheckboxes(rec *testsupport.Recorder, value any) *fields.CheckboxGroup {
	return fields.NewCheckboxGroup(fields.CheckboxGroupConfig{
		Props: fields.Props{Input: rec.Input("colors", value), Label: "Colors"},
		Choices: fields.Choices{Options: []model.Option{
			{Label: "Alpha", Value: "A"},
			{Label: "Beta", Value: "B"},
		}},
	})
}

func TestCheckboxGroup_ReconcilesLikeAHost(t *testing.T) {
	rec := &testsupport.Recorder{}
	var value any

	steps := []struct {
		value   string
		checked bool
		want    any
	}{
		{value: "A", checked: true, want: []any{"A"}},
		{value: "B", checked: true, want: []any{"A", "B"}},
		{value: "A", checked: false, want: []any{"B"}},
		{value: "B", checked: false, want: nil},
	}

	for _, step := range steps {
		rec.Reset()
		field := newCheckboxes(rec, value)
		field.Toggle(step.value, step.checked)

		calls := rec.Calls()
		if len(calls) != 2 || calls[0].Event != testsupport.EventBlur || calls[1].Event != testsupport.EventChange {
			t.Fatalf("expected blur then change, got %+v", calls)
		}
		if calls[0].Value != nil {
			t.Fatalf("blur must not carry a payload, got %#v", calls[0].Value)
		}
		if diff := cmp.Diff(step.want, calls[1].Value); diff != "" {
			t.Fatalf("toggle %s=%v (-want +got):\n%s", step.value, step.checked, diff)
		}
		value = calls[1].Value
	}
}

func TestCheckboxGroup_EmptySelectionIsUntypedNil(t *testing.T) {
	rec := &testsupport.Recorder{}
	field := newCheckboxes(rec, []any{"A"})
	field.Toggle("A", false)

	last, _ := rec.Last(testsupport.EventChange)
	if last.Value != nil {
		t.Fatalf("expected untyped nil, got %#v", last.Value)
	}
}

func TestCheckboxGroup_ViewNamesAndCheckedState(t *testing.T) {
	rec := &testsupport.Recorder{}
	field := newCheckboxes(rec, []string{"B"})

	view := field.View()
	want := []fields.OptionView{
		{ID: "fg-colors-0", Name: "colors_0", Label: "Alpha", Value: "A"},
		{ID: "fg-colors-1", Name: "colors_1", Label: "Beta", Value: "B", Checked: true},
	}
	if diff := cmp.Diff(want, view.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !view.Multiple {
		t.Fatalf("checkbox group should be multiple")
	}
	if !field.Checked("B") || field.Checked("A") {
		t.Fatalf("unexpected checked state")
	}
}

func TestCheckboxGroup_ToggleIndex(t *testing.T) {
	rec := &testsupport.Recorder{}
	field := newCheckboxes(rec, nil)

	if err := field.ToggleIndex(1, true); err != nil {
		t.Fatalf("toggle index: %v", err)
	}
	last, _ := rec.Last(testsupport.EventChange)
	if diff := cmp.Diff([]any{"B"}, last.Value); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if err := field.ToggleIndex(-1, true); err != fields.ErrOptionIndex {
		t.Fatalf("expected ErrOptionIndex, got %v", err)
	}
}

func TestCheckboxGroup_UnhashableOptionValues(t *testing.T) {
	options := []model.Record{
		{"label": "Pair", "value": []any{1, 2}},
		{"label": "Point", "value": map[string]any{"x": 1}},
	}
	newField := func(rec *testsupport.Recorder, value any) *fields.CheckboxGroup {
		return fields.NewCheckboxGroup(fields.CheckboxGroupConfig{
			Props:   fields.Props{Input: rec.Input("shapes", value)},
			Choices: fields.Choices{Records: options, Keys: model.DefaultKeys()},
		})
	}

	rec := &testsupport.Recorder{}
	if err := newField(rec, nil).ToggleIndex(0, true); err != nil {
		t.Fatalf("ToggleIndex: %v", err)
	}
	last, _ := rec.Last(testsupport.EventChange)
	if diff := cmp.Diff([]any{[]any{1, 2}}, last.Value); diff != "" {
		t.Fatalf("check pair (-want +got):\n%s", diff)
	}

	rec.Reset()
	field := newField(rec, last.Value)
	if err := field.ToggleIndex(1, true); err != nil {
		t.Fatalf("ToggleIndex: %v", err)
	}
	last, _ = rec.Last(testsupport.EventChange)
	want := []any{[]any{1, 2}, map[string]any{"x": 1}}
	if diff := cmp.Diff(want, last.Value); diff != "" {
		t.Fatalf("check point (-want +got):\n%s", diff)
	}
	if !newField(rec, last.Value).Checked([]any{1, 2}) {
		t.Fatalf("expected pair to be checked")
	}

	rec.Reset()
	if err := newField(rec, []any{[]any{1, 2}}).ToggleIndex(0, false); err != nil {
		t.Fatalf("ToggleIndex: %v", err)
	}
	last, _ = rec.Last(testsupport.EventChange)
	if last.Value != nil {
		t.Fatalf("expected nil after unchecking the only value, got %#v", last.Value)
	}
}
