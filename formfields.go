// Package formfields renders form definitions with the bundled field
// adapters. RenderHTML covers the common case; the pkg/ packages expose each
// stage (definition, form host, fields, renderers) for callers that need more
// control.
package formfields

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheets.
//
//	mux.Handle(vanilla.DefaultAssetPrefix,
//	  http.StripPrefix(vanilla.DefaultAssetPrefix, formfields.AssetsHandler()))
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// AssetsHandler serves AssetsFS.
func AssetsHandler() http.Handler {
	return http.FileServerFS(AssetsFS())
}

// Option customises RenderHTML.
type Option func(*config)

type config struct {
	values        map[string]any
	errors        map[string][]string
	formOptions   []form.Option
	renderOptions render.RenderOptions
	renderer      render.Renderer

	selector      theme.ThemeSelector
	themeName     string
	themeVariant  string
	themeFallback map[string]string
}

// WithValues prefills the form.
func WithValues(values map[string]any) Option {
	return func(c *config) { c.values = values }
}

// WithErrorPayload maps a server error payload onto the fields. Keys that
// match no field become form-level messages.
func WithErrorPayload(payload map[string][]string) Option {
	return func(c *config) { c.errors = payload }
}

// WithFormOptions forwards options to form.Build.
func WithFormOptions(options ...form.Option) Option {
	return func(c *config) { c.formOptions = append(c.formOptions, options...) }
}

// WithRenderOptions sets method, hidden inputs, fragment mode or a fixed theme.
func WithRenderOptions(options render.RenderOptions) Option {
	return func(c *config) { c.renderOptions = options }
}

// WithRenderer replaces the default vanilla renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(c *config) { c.renderer = renderer }
}

// WithThemeSelector resolves the named theme and variant before rendering.
// The selection replaces any theme set through WithRenderOptions.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(c *config) {
		c.selector = selector
		c.themeName = name
		c.themeVariant = variant
	}
}

// WithThemeFallbacks supplies partials used when the theme does not
// override them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(c *config) { c.themeFallback = fallbacks }
}

// RenderHTML binds def to a fresh host and renders it.
func RenderHTML(ctx context.Context, def definition.Definition, options ...Option) ([]byte, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	mapping := render.MapErrorPayload(def.Names(), cfg.errors)
	host := form.NewHost(form.WithValues(cfg.values), form.WithErrors(mapping.Fields))
	built, err := form.Build(def, host, cfg.formOptions...)
	if err != nil {
		return nil, fmt.Errorf("formfields: %w", err)
	}
	defer built.Close()

	renderer := cfg.renderer
	if renderer == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("formfields: %w", err)
		}
		renderer = html
	}

	opts := cfg.renderOptions
	opts.FormErrors = append(append([]string(nil), opts.FormErrors...), mapping.Form...)
	if cfg.selector != nil {
		selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("formfields: select theme %q: %w", cfg.themeName, err)
		}
		opts.Theme = RendererConfig(selection, cfg.themeFallback)
	}

	return renderer.Render(ctx, built.RenderView(), opts)
}

// RendererConfig flattens a theme selection into renderer configuration.
// Variant tokens, templates and asset files override the manifest's.
// Tokens are also exposed as `--<token>` CSS variables.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: merge(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	prefix := ""
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		cfg.Partials = merge(cfg.Partials, manifest.Templates)
		cfg.Tokens = merge(manifest.Tokens)
		prefix = manifest.Assets.Prefix
		files = merge(manifest.Assets.Files)
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			cfg.Partials = merge(cfg.Partials, variant.Templates)
			cfg.Tokens = merge(cfg.Tokens, variant.Tokens)
			files = merge(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

func merge(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
