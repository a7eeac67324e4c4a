package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

type stubDriver struct {
	answers   []Answer
	questions []Question
	notices   []string
}

func (s *stubDriver) Ask(_ context.Context, q Question) (Answer, error) {
	s.questions = append(s.questions, q)
	if len(s.answers) == 0 {
		return Answer{}, errors.New("no answer scripted")
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

func (s *stubDriver) Notify(_ context.Context, msg string) error {
	s.notices = append(s.notices, msg)
	return nil
}

func (s *stubDriver) asked(kind QuestionKind) []Question {
	var out []Question
	for _, q := range s.questions {
		if q.Kind == kind {
			out = append(out, q)
		}
	}
	return out
}

func petDefinition() definition.Definition {
	return definition.Definition{ID: "pet", Fields: []definition.Field{
		{Name: "name", Label: "Name", Rules: validation.Rules{Required: true}},
		{Name: "colours", Label: "Colours", Multiple: true, Options: []model.Record{
			{"label": "Red", "value": "red"},
			{"label": "Blue", "value": "blue"},
			{"label": "Green", "value": "green"},
		}},
		{Name: "size", Kind: "radio", Options: []model.Record{
			{"label": "Small", "value": "s"},
			{"label": "Medium", "value": "m"},
		}},
		{Name: "newsletter", DataType: "boolean"},
		{Name: "born", Format: "date"},
	}}
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode output: %v\n%s", err, data)
	}
	return out
}

func TestRunCollectsValues(t *testing.T) {
	driver := &stubDriver{answers: []Answer{
		{Text: ""},
		{Text: "Rex"},
		{Chosen: []int{0, 2}},
		{Chosen: []int{2}},
		{On: true},
		{Text: "2020-01-02"},
	}}
	session := New(WithPromptDriver(driver), WithFormOptions(form.WithLocation(time.UTC)))

	out, err := session.Run(context.Background(), petDefinition())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		"name":       "Rex",
		"colours":    []any{"red", "green"},
		"size":       "m",
		"newsletter": true,
		"born":       "2020-01-02T00:00:00Z",
	}
	if diff := cmp.Diff(want, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if len(driver.notices) != 1 || !strings.Contains(driver.notices[0], "Name: required") {
		t.Fatalf("expected one required message, got %v", driver.notices)
	}
	if got := driver.asked(AskChoice)[0].Choices; !cmp.Equal(got, []string{noneLabel, "Small", "Medium"}) {
		t.Fatalf("unexpected radio options %v", got)
	}
	if got := driver.asked(AskChoices)[0].Choices; !cmp.Equal(got, []string{"Red", "Blue", "Green"}) {
		t.Fatalf("unexpected colour options %v", got)
	}
}

func TestRunRepromptsInvalidDate(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "starts", Label: "Starts", Format: "date-time"}}}
	driver := &stubDriver{answers: []Answer{{Text: "tomorrow"}, {Text: "2024-05-01T09:30"}}}
	session := New(WithPromptDriver(driver), WithFormOptions(form.WithLocation(time.UTC)))

	out, err := session.Run(context.Background(), def)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"starts": "2024-05-01T09:30:00Z"}, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.notices) != 1 || !strings.Contains(driver.notices[0], "expected format 2006-01-02T15:04") {
		t.Fatalf("expected layout message, got %v", driver.notices)
	}
}

func TestRunKeepsPrefilledRadioValue(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "size", Kind: "radio", Options: []model.Record{
		{"label": "Small", "value": "s"},
		{"label": "Medium", "value": "m"},
	}}}}
	driver := &stubDriver{answers: []Answer{{Chosen: []int{2}}}}
	session := New(WithPromptDriver(driver), WithValues(map[string]any{"size": "m"}))

	out, err := session.Run(context.Background(), def)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"size": "m"}, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, driver.questions[0].Chosen); diff != "" {
		t.Fatalf("preselection mismatch (-want +got):\n%s", diff)
	}
}

func TestRunClearsRadioWithNone(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "size", Kind: "radio", Options: []model.Record{
		{"label": "Small", "value": "s"},
	}}}}
	driver := &stubDriver{answers: []Answer{{Chosen: []int{0}}}}
	session := New(WithPromptDriver(driver), WithValues(map[string]any{"size": "s"}))

	out, err := session.Run(context.Background(), def)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"size": nil}, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAsyncSelectRetriesFailedLoad(t *testing.T) {
	calls := 0
	loader := func(_ context.Context, query string) ([]model.Record, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("backend unavailable")
		}
		return []model.Record{
			{"name": "Labrador", "id": 1},
			{"name": "Lab mix", "id": 2},
		}, nil
	}
	def := definition.Definition{Fields: []definition.Field{{
		Name:     "breed",
		Label:    "Breed",
		Kind:     "select",
		LabelKey: "name",
		ValueKey: "id",
	}}}
	driver := &stubDriver{answers: []Answer{{Text: "lab"}, {Text: "lab"}, {Chosen: []int{2}}}}
	session := New(WithPromptDriver(driver), WithFormOptions(form.WithLoader("breed", loader)))

	out, err := session.Run(context.Background(), def)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"breed": float64(2)}, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if calls != 2 {
		t.Fatalf("expected loader to run for every search, got %d", calls)
	}
	if len(driver.notices) != 1 || !strings.Contains(driver.notices[0], "backend unavailable") {
		t.Fatalf("expected load failure message, got %v", driver.notices)
	}
}

func TestRunStopsAfterMaxAttempts(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "name", Rules: validation.Rules{Required: true}}}}
	driver := &stubDriver{answers: []Answer{{Text: ""}, {Text: ""}}}
	session := New(WithPromptDriver(driver), WithMaxAttempts(2))

	_, err := session.Run(context.Background(), def)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRunPropagatesDriverErrors(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "name"}}}
	session := New(WithPromptDriver(&stubDriver{}))

	if _, err := session.Run(context.Background(), def); err == nil || !strings.Contains(err.Error(), "no answer scripted") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestRunAttachesFieldChecks(t *testing.T) {
	maxLen := 4
	def := definition.Definition{Fields: []definition.Field{
		{Name: "name", Label: "Name", Rules: validation.Rules{Required: true, MaxLength: &maxLen}},
		{Name: "born", Format: "date"},
		{Name: "newsletter", DataType: "boolean"},
	}}
	driver := &stubDriver{answers: []Answer{{Text: "Rex"}, {Text: "2020-01-02"}, {On: false}}}
	session := New(WithPromptDriver(driver), WithFormOptions(form.WithLocation(time.UTC)))

	if _, err := session.Run(context.Background(), def); err != nil {
		t.Fatalf("Run: %v", err)
	}

	name := driver.questions[0]
	if name.Field != "name" || name.Kind != AskLine || name.Check == nil {
		t.Fatalf("unexpected name question %+v", name)
	}
	if err := name.Check(""); err == nil || err.Error() != "required" {
		t.Fatalf("expected required error, got %v", err)
	}
	if err := name.Check("Rexford"); err == nil {
		t.Fatalf("expected max length error")
	}
	if err := name.Check("Rex"); err != nil {
		t.Fatalf("expected Rex to pass, got %v", err)
	}

	born := driver.questions[1]
	if err := born.Check(" 2020-01-02 "); err != nil {
		t.Fatalf("expected date to pass, got %v", err)
	}

	if toggle := driver.questions[2]; toggle.Kind != AskConfirm || toggle.Check != nil {
		t.Fatalf("unexpected toggle question %+v", toggle)
	}
}

func TestRunUsesCustomDeriverInChecks(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "code"}}}
	strict := func(meta model.Meta) validation.Result {
		return validation.Result{State: validation.StateError, Message: "never valid"}
	}
	driver := &stubDriver{answers: []Answer{{Text: "x"}}}
	session := New(WithPromptDriver(driver), WithMaxAttempts(1), WithFormOptions(form.WithValidator("code", strict)))

	if _, err := session.Run(context.Background(), def); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if err := driver.questions[0].Check("anything"); err == nil || err.Error() != "never valid" {
		t.Fatalf("expected deriver message, got %v", err)
	}
}

func TestRunAsksSecretsWithoutDefault(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "pin", InputType: "password"}}}
	driver := &stubDriver{answers: []Answer{{Text: "1234"}}}
	session := New(WithPromptDriver(driver), WithValues(map[string]any{"pin": "0000"}))

	out, err := session.Run(context.Background(), def)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"pin": "1234"}, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if q := driver.questions[0]; q.Kind != AskSecret || q.Default != "" {
		t.Fatalf("unexpected secret question %+v", q)
	}
}

func TestOutputFormats(t *testing.T) {
	values := map[string]any{
		"name":    "Rex",
		"colours": []any{"red", "blue"},
		"owner":   map[string]any{"city": "Oslo"},
	}

	encoded, err := serialize(OutputFormatFormURLEncoded, values)
	if err != nil {
		t.Fatalf("serialize form: %v", err)
	}
	if got, want := string(encoded), "colours%5B%5D=red&colours%5B%5D=blue&name=Rex&owner.city=Oslo"; got != want {
		t.Fatalf("form output = %q, want %q", got, want)
	}

	pretty, err := serialize(OutputFormatPrettyText, values)
	if err != nil {
		t.Fatalf("serialize pretty: %v", err)
	}
	if got, want := string(pretty), "colours[0]=red\ncolours[1]=blue\nname=Rex\nowner.city=Oslo\n"; got != want {
		t.Fatalf("pretty output = %q, want %q", got, want)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if format, ok := ParseOutputFormat(""); !ok || format != OutputFormatJSON {
		t.Fatalf("expected json default, got %q %v", format, ok)
	}
	if _, ok := ParseOutputFormat("xml"); ok {
		t.Fatalf("expected xml to be rejected")
	}
}
