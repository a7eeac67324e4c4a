package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

func TestHostInputWritesThrough(t *testing.T) {
	host := form.NewHost(form.WithValues(map[string]any{"name": "Ada"}))
	var events []form.Event
	unsubscribe := host.Subscribe(func(evt form.Event) { events = append(events, evt) })

	input := host.Input("name")
	if input.Value != "Ada" {
		t.Fatalf("expected seeded value, got %v", input.Value)
	}
	input.Focus()
	input.Blur(nil)
	input.Change("Grace")

	want := []form.Event{
		{Kind: form.EventFocus, Field: "name"},
		{Kind: form.EventBlur, Field: "name"},
		{Kind: form.EventChange, Field: "name", Value: "Grace"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if host.Value("name") != "Grace" {
		t.Fatalf("expected value written, got %v", host.Value("name"))
	}

	unsubscribe()
	input.Change("Linus")
	if len(events) != 3 {
		t.Fatalf("expected no events after unsubscribe, got %d", len(events))
	}
}

func TestHostMetaGatesRulesOnTouched(t *testing.T) {
	host := form.NewHost(form.WithRules("email", validation.Rules{Required: true}))

	if diff := cmp.Diff(model.Meta{}, host.Meta("email")); diff != "" {
		t.Fatalf("untouched meta mismatch (-want +got):\n%s", diff)
	}

	host.Input("email").Blur(nil)
	if diff := cmp.Diff(model.Meta{Touched: true, Error: "required"}, host.Meta("email")); diff != "" {
		t.Fatalf("touched meta mismatch (-want +got):\n%s", diff)
	}
	if host.Valid("email") {
		t.Fatalf("expected invalid host")
	}

	host.Input("email").Change("ada@example.com")
	if diff := cmp.Diff(model.Meta{Touched: true}, host.Meta("email")); diff != "" {
		t.Fatalf("valid meta mismatch (-want +got):\n%s", diff)
	}
}

func TestHostServerErrorsClearOnChange(t *testing.T) {
	host := form.NewHost(form.WithErrors(map[string][]string{"email": {"already taken", "second"}}))

	meta := host.Meta("email")
	if meta.Error != "already taken" || !meta.Touched {
		t.Fatalf("expected first server error on a touched field, got %+v", meta)
	}
	host.Input("email").Change("other@example.com")
	if got := host.Meta("email").Error; got != "" {
		t.Fatalf("expected server error cleared, got %q", got)
	}
}

func TestHostWarnings(t *testing.T) {
	limit := 3
	host := form.NewHost(form.WithRules("bio", validation.Rules{SoftMaxLength: &limit}))
	host.Input("bio").Change("longer")
	host.TouchAll("bio")

	meta := host.Meta("bio")
	if meta.Error != "" || meta.Warning == "" {
		t.Fatalf("expected a warning only, got %+v", meta)
	}
	if got := validation.Derive(meta).State; got != validation.StateWarning {
		t.Fatalf("expected warning state, got %q", got)
	}
}
