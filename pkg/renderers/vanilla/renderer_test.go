package vanilla_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
)

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func sampleForm() render.FormView {
	colours := fields.NewCheckboxGroup(fields.CheckboxGroupConfig{
		Props: fields.Props{
			Input: model.Input{Name: "colours", Value: []any{"blue"}},
			Meta:  model.Meta{Touched: true, Error: "Pick two colours"},
			Label: "Colours",
		},
		Choices: fields.Choices{Options: []model.Option{
			{Label: "Red", Value: "red"},
			{Label: "Blue", Value: "blue"},
		}},
	})
	name := fields.NewText(fields.TextConfig{
		Props: fields.Props{
			Input:    model.Input{Name: "name", Value: "Rex & Co"},
			Label:    "Name",
			Required: true,
		},
	})
	newsletter := fields.NewToggle(fields.ToggleConfig{
		Props: fields.Props{Input: model.Input{Name: "newsletter", Value: true}, Label: "Newsletter"},
	})

	return render.FormView{
		ID:     "pet",
		Title:  "Pet",
		Action: "/pets",
		Fields: []fields.View{name.View(), colours.View(), newsletter.View()},
	}
}

func TestRendererRendersEmbeddedTemplates(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{
		Method:     "PUT",
		FormErrors: []string{"Could not save"},
		Hidden:     map[string]string{"_csrf": "token-123"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	for _, want := range []string{
		`<form id="pet" class="formfields-form" method="post" action="/pets"`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<input type="hidden" name="_csrf" value="token-123">`,
		`<li>Could not save</li>`,
		`value="Rex &amp; Co"`,
		`name="colours_0" value="red"`,
		`name="colours_1" value="blue" checked`,
		`data-validation-state="error"`,
		`Pick two colours`,
		`role="switch"`,
		`<link rel="stylesheet" href="/assets/formfields/formfields.css">`,
		`<link rel="stylesheet" href="/assets/formfields/formfields-toggle.css">`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRendererFragment(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	if strings.Contains(html, "<form") || strings.Contains(html, "<link") {
		t.Fatalf("fragment must only contain field markup:\n%s", html)
	}
	if got := strings.Count(html, `class="formfields-group"`); got != 3 {
		t.Fatalf("expected 3 field groups, got %d:\n%s", got, html)
	}
}

func TestRendererThemeConfig(t *testing.T) {
	renderer := newRenderer(t)

	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{
			"--ff-accent": "#336699",
			"--ff-bad":    "red;}</style><script>",
			"color":       "ignored",
		},
		AssetURL: func(name string) string {
			return "https://cdn.example.com/" + name
		},
	}

	output, err := renderer.Render(context.Background(), sampleForm(), render.RenderOptions{Theme: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	for _, want := range []string{
		`<style data-formfields-theme>:root{--ff-accent:#336699;--ff-bad:red/stylescript;}</style>`,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`href="https://cdn.example.com/formfields.css"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("css var escaped the style block:\n%s", html)
	}
}

func TestRendererHonoursCancelledContext(t *testing.T) {
	renderer := newRenderer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := renderer.Render(ctx, sampleForm(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRendererAssets(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithAssetPrefix("/static/"))

	stylesheets, scripts := renderer.Assets(nil, model.FieldKindToggle, model.FieldKindText)
	want := []string{"/static/formfields.css", "/static/formfields-toggle.css"}
	if diff := cmp.Diff(want, stylesheets); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	if len(scripts) != 0 {
		t.Fatalf("expected no scripts, got %v", scripts)
	}
}

func TestRendererMetadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}
