package form_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/testsupport"
	"github.com/goliatone/go-formfields/pkg/validation"
)

func colours() []model.Record {
	return []model.Record{
		{"label": "Red", "value": "r"},
		{"label": "Green", "value": "g"},
		{"label": "Blue", "value": "b"},
	}
}

func TestBuildResolvesKinds(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{
		{Name: "name"},
		{Name: "colours", Options: colours(), Multiple: true},
		{Name: "favourite", Options: colours()},
		{Name: "size", Kind: "radio", Options: colours()},
		{Name: "active", DataType: "boolean"},
		{Name: "born", Format: "date"},
	}}

	f, err := form.Build(def, form.NewHost())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var got []model.FieldKind
	for _, field := range f.Fields() {
		got = append(got, field.Kind())
	}
	want := []model.FieldKind{
		model.FieldKindText,
		model.FieldKindCheckbox,
		model.FieldKindSelect,
		model.FieldKindRadio,
		model.FieldKindToggle,
		model.FieldKindDateTime,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if def.Fields[0].Kind != "" {
		t.Fatalf("Build must not mutate the caller's definition")
	}
	if f.Definition().Fields[0].Kind != "text" {
		t.Fatalf("expected resolved kind recorded on the form definition")
	}

	born, _ := f.Field("born")
	if born.(*fields.DateTime).Layout() != fields.LayoutDate {
		t.Fatalf("expected date layout from format")
	}
}

func TestRenderView(t *testing.T) {
	def := definition.Definition{
		ID:          "signup",
		Title:       "Sign up",
		Action:      "/signup",
		SubmitLabel: "Join",
		Fields:      []definition.Field{{Name: "email", Label: "Email", InputType: "email"}},
	}
	host := form.NewHost(form.WithValues(map[string]any{"email": "a@b.c"}))

	f, err := form.Build(def, host)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	view := f.RenderView()
	if view.ID != "signup" || view.Action != "/signup" || view.SubmitLabel != "Join" {
		t.Fatalf("unexpected form view %+v", view)
	}
	if len(view.Fields) != 1 || view.Fields[0].Value != "a@b.c" || view.Fields[0].InputType != "email" {
		t.Fatalf("unexpected field views %+v", view.Fields)
	}
}

func TestBuildRejectsInvalidDefinition(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "a"}, {Name: "a"}}}
	if _, err := form.Build(def, form.NewHost()); !errors.Is(err, definition.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
	if _, err := form.Build(definition.Definition{}, nil); err == nil {
		t.Fatalf("expected error for nil host")
	}
}

func TestCheckboxGroupRoundTripThroughHost(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{
		{Name: "colours", Kind: "checkbox", Options: colours()},
	}}
	host := form.NewHost()
	f, err := form.Build(def, host)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	field, _ := f.Field("colours")
	group := field.(*fields.CheckboxGroup)

	group.Toggle("r", true)
	group.Toggle("b", true)
	if diff := cmp.Diff([]any{"r", "b"}, host.Value("colours")); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if !group.Checked("b") || group.Checked("g") {
		t.Fatalf("field did not observe host updates")
	}

	group.Toggle("r", false)
	group.Toggle("b", false)
	if got := host.Value("colours"); got != nil {
		t.Fatalf("expected nil after clearing, got %#v", got)
	}
	if !group.Props().Meta.Touched {
		t.Fatalf("expected blur to mark the field touched")
	}
	if got := group.Result().State; got != validation.StateSuccess {
		t.Fatalf("expected success once touched, got %q", got)
	}
}

func TestRadioDeselectThroughHost(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{
		{Name: "size", Kind: "radio", Options: colours(), Default: "g"},
	}}
	host := form.NewHost()
	f, err := form.Build(def, host)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	field, _ := f.Field("size")
	radio := field.(*fields.RadioGroup)

	if host.Value("size") != "g" {
		t.Fatalf("expected default value seeded, got %v", host.Value("size"))
	}
	radio.Select("g")
	if got := host.Value("size"); got != nil {
		t.Fatalf("expected deselect to report nil, got %v", got)
	}
	radio.Select("r")
	if got := host.Value("size"); got != "r" {
		t.Fatalf("expected r, got %v", got)
	}
}

func TestSubmitSurfacesRuleErrors(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{
		{Name: "email", Rules: validation.Rules{Required: true}},
		{Name: "nickname"},
	}}
	f, err := form.Build(def, form.NewHost())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	email, _ := f.Field("email")
	if email.Result().State != validation.StateNone {
		t.Fatalf("expected no state before submit, got %q", email.Result().State)
	}
	if f.Submit() {
		t.Fatalf("expected submit to fail")
	}
	want := validation.Result{State: validation.StateError, Message: "required"}
	if diff := cmp.Diff(want, email.Result()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	email.(*fields.Text).Change("ada@example.com")
	if !f.Submit() {
		t.Fatalf("expected submit to succeed")
	}
}

func TestCustomValidatorRunsOncePerUpdate(t *testing.T) {
	deriver := &testsupport.CountingDeriver{Result: validation.Result{State: validation.StateSuccess}}
	def := definition.Definition{Fields: []definition.Field{{Name: "name"}}}
	f, err := form.Build(def, form.NewHost(), form.WithValidator("name", deriver.Derive))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if deriver.Calls() != 1 {
		t.Fatalf("expected one derivation on mount, got %d", deriver.Calls())
	}

	field, _ := f.Field("name")
	field.(*fields.Text).Change("x")
	if deriver.Calls() != 2 {
		t.Fatalf("expected one derivation per update, got %d", deriver.Calls())
	}
	f.Close()
	field.(*fields.Text).Change("y")
	if deriver.Calls() != 2 {
		t.Fatalf("expected no updates after Close, got %d", deriver.Calls())
	}
}

func TestDateTimeThroughHost(t *testing.T) {
	def := definition.Definition{Fields: []definition.Field{{Name: "at", Kind: "datetime"}}}
	host := form.NewHost()
	f, err := form.Build(def, host, form.WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	field, _ := f.Field("at")
	dt := field.(*fields.DateTime)

	dt.Change("2024-05-01T10:30")
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	if got, ok := host.Value("at").(time.Time); !ok || !got.Equal(want) {
		t.Fatalf("expected %v, got %#v", want, host.Value("at"))
	}

	dt.Change("tomorrow")
	host.TouchAll("at")
	if got := host.Meta("at").Error; got != "expected format 2006-01-02T15:04" {
		t.Fatalf("expected layout error, got %q", got)
	}
}

func TestAsyncSelectWithEndpointLoader(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("X-Token") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"name":"Spain","code":"es"},{"name":"%s","code":"xx"}]}`, r.URL.Query().Get("search"))
	}))
	defer srv.Close()

	def := definition.Definition{Fields: []definition.Field{{
		Name:     "country",
		LabelKey: "name",
		ValueKey: "code",
		Endpoint: &definition.Endpoint{
			URL:         srv.URL,
			ResultsPath: "data",
			QueryParam:  "search",
			Headers:     map[string]string{"X-Token": "secret"},
		},
	}}}
	host := form.NewHost()
	f, err := form.Build(def, host, form.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	field, _ := f.Field("country")
	sel := field.(*fields.Select)
	if !sel.Async() {
		t.Fatalf("expected async select")
	}

	opts, err := sel.Load(context.Background(), "Narnia")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []model.Option{
		{Label: "Spain", Value: "es", Record: model.Record{"name": "Spain", "code": "es"}},
		{Label: "Narnia", Value: "xx", Record: model.Record{"name": "Narnia", "code": "xx"}},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if _, err := sel.Load(context.Background(), "Narnia"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected every load to hit the endpoint, got %d", hits.Load())
	}

	if err := sel.ChooseValues("es"); err != nil {
		t.Fatalf("ChooseValues: %v", err)
	}
	if host.Value("country") != "es" {
		t.Fatalf("expected es, got %v", host.Value("country"))
	}
}

func TestEndpointLoaderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	loader := form.EndpointLoader(definition.Endpoint{URL: srv.URL}, srv.Client())
	if _, err := loader(context.Background(), ""); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestWithLoaderOverridesEndpoint(t *testing.T) {
	calls := 0
	loader := func(ctx context.Context, query string) ([]model.Record, error) {
		calls++
		return []model.Record{{"label": query, "value": query}}, nil
	}
	def := definition.Definition{Fields: []definition.Field{{
		Name:     "tag",
		Kind:     "select",
		Endpoint: &definition.Endpoint{URL: "http://unused.invalid"},
	}}}
	f, err := form.Build(def, form.NewHost(), form.WithLoader("tag", loader))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	field, _ := f.Field("tag")
	if _, err := field.(*fields.Select).Load(context.Background(), "go"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected custom loader to be used, got %d calls", calls)
	}
}
