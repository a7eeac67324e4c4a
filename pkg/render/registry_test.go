package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, render.FormView, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	reg, err := render.NewRegistry(stubRenderer{name: "vanilla"}, stubRenderer{name: "tui"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := reg.Register(stubRenderer{name: " Vanilla "}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	def, err := reg.Get("")
	if err != nil || def.Name() != "vanilla" {
		t.Fatalf("expected first registered renderer as default, got %v (%v)", def, err)
	}
	if !reg.Has("TUI") {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, err := reg.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
