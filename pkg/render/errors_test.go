package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formfields/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	names := []string{"name", "owner.email", "owner.phone", "tags"}
	payload := map[string][]string{
		"/body/name":                 {"Name is required", " Name is required "},
		"body.owner.email":           {"Email invalid"},
		"$.body.tags[0]":             {"Tags must be unique"},
		"body/owner/phone/~1number":  {"Phone malformed"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Falls back to the form"},
		"":                           {"Unscoped form error"},
		"name":                       {"   "},
	}

	mapped := render.MapErrorPayload(names, payload)

	wantFields := map[string][]string{
		"name":        {"Name is required"},
		"owner.email": {"Email invalid"},
		"owner.phone": {"Phone malformed"},
		"tags":        {"Tags must be unique"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Falls back to the form", "Form level error", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapped := render.MapErrorPayload([]string{"a"}, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
