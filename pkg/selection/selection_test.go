package selection_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/selection"
)

func TestToggle_CheckboxSequence(t *testing.T) {
	var value []any

	value = selection.Toggle(value, any("A"), true)
	if diff := cmp.Diff([]any{"A"}, value); diff != "" {
		t.Fatalf("check A (-want +got):\n%s", diff)
	}

	value = selection.Toggle(value, any("B"), true)
	if diff := cmp.Diff([]any{"A", "B"}, value); diff != "" {
		t.Fatalf("check B (-want +got):\n%s", diff)
	}

	value = selection.Toggle(value, any("A"), false)
	if diff := cmp.Diff([]any{"B"}, value); diff != "" {
		t.Fatalf("uncheck A (-want +got):\n%s", diff)
	}

	value = selection.Toggle(value, any("B"), false)
	if value != nil {
		t.Fatalf("expected nil after last uncheck, got %#v", value)
	}
}

func TestToggle_CheckingTwiceKeepsUnique(t *testing.T) {
	got := selection.Toggle([]string{"A"}, "A", true)
	if diff := cmp.Diff([]string{"A"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestToggle_DoesNotMutateCurrent(t *testing.T) {
	current := []string{"A", "B"}
	_ = selection.Toggle(current, "A", false)
	if diff := cmp.Diff([]string{"A", "B"}, current); diff != "" {
		t.Fatalf("current mutated (-want +got):\n%s", diff)
	}
}

func TestLegacy(t *testing.T) {
	cases := []struct {
		name     string
		current  []string
		selected []string
		want     []string
	}{
		{name: "first selection", current: nil, selected: []string{"A"}, want: []string{"A"}},
		{name: "addition", current: []string{"A"}, selected: []string{"A", "B"}, want: []string{"A", "B"}},
		{name: "removal", current: []string{"A", "B"}, selected: []string{"B"}, want: []string{"B"}},
		{name: "clear", current: []string{"A"}, selected: nil, want: nil},
		{name: "unchanged", current: []string{"A", "B"}, selected: []string{"B", "A"}, want: []string{"A", "B"}},
		{name: "disjoint replace reads as union", current: []string{"A"}, selected: []string{"C"}, want: []string{"A", "C"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := selection.Legacy(tc.current, tc.selected)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	if got := selection.Replace([]string{}); got != nil {
		t.Fatalf("expected nil for empty selection, got %#v", got)
	}
	got := selection.Replace([]string{"C", "A", "C"})
	if diff := cmp.Diff([]string{"C", "A"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSingle(t *testing.T) {
	if got := selection.Single(nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	got := selection.Single([]model.Option{{Label: "Option 1", Value: "One"}, {Label: "Option 2", Value: "Two"}})
	if got != "One" {
		t.Fatalf("expected One, got %#v", got)
	}
}

func TestOptionValues(t *testing.T) {
	got := selection.OptionValues([]model.Option{{Value: 1}, {Value: 2}})
	if diff := cmp.Diff([]any{1, 2}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
