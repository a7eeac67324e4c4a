// Package vanilla renders forms as server-side HTML using pongo2 templates,
// a component registry keyed by field kind and go-theme configuration.
package vanilla

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla/components"
)

const (
	formTemplate   = "templates/form.tpl"
	formPartialKey = "forms.form"
)

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[string]string
	assetPrefix      string
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a template renderer, bypassing the embedded
// pongo2 engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides forces the component used for the named fields.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		for name, component := range overrides {
			cfg.overrides[strings.TrimSpace(name)] = component
		}
	}
}

// WithAssetPrefix sets the URL prefix of bundled stylesheets.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetPrefix = prefix
	}
}

// WithSubmitLabel sets the default submit button label.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(label) != "" {
			cfg.submitLabel = label
		}
	}
}

// Renderer renders HTML forms.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	overrides   map[string]string
	assetPrefix string
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		overrides:   make(map[string]string),
		assetPrefix: DefaultAssetPrefix,
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS), gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	return &Renderer{
		templates:   templates,
		registry:    registry,
		overrides:   cfg.overrides,
		assetPrefix: cfg.assetPrefix,
		submitLabel: cfg.submitLabel,
	}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Assets returns the stylesheets and scripts the given kinds need, resolved
// to URLs. Hosts inject them once at start-up.
func (r *Renderer) Assets(cfg *theme.RendererConfig, kinds ...model.FieldKind) ([]string, []components.Script) {
	stylesheets, scripts := r.registry.Assets(componentsForKinds(kinds))
	return r.resolveStylesheets(cfg, stylesheets), scripts
}

// Render implements render.Renderer. Fragment output holds the field markup
// only; full output wraps it in the form template with theme variables,
// stylesheets, hidden inputs and form-level errors.
func (r *Renderer) Render(ctx context.Context, form render.FormView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}
	fieldRenderer := newComponentRenderer(r.templates, r.registry, r.overrides, partials)

	markup := make([]string, 0, len(form.Fields))
	for _, view := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fieldHTML, err := fieldRenderer.render(view)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		markup = append(markup, fieldHTML)
	}
	if opts.Fragment {
		return []byte(strings.Join(markup, "")), nil
	}

	stylesheets, scripts := fieldRenderer.assets()
	method, override := render.SubmitMethod(firstNonEmpty(opts.Method, form.Method))
	payload := map[string]any{
		"form":            form,
		"fields":          markup,
		"method":          method,
		"method_override": override,
		"form_errors":     render.MergeFormErrors(opts.FormErrors),
		"hidden_fields":   render.SortedHiddenFields(opts.Hidden),
		"submit_label":    firstNonEmpty(form.SubmitLabel, r.submitLabel),
		"stylesheets":     r.resolveStylesheets(opts.Theme, stylesheets),
		"scripts":         scriptTags(scripts),
		"theme_style":     themeStyle(opts.Theme),
	}
	if opts.Theme != nil {
		payload["theme_name"] = opts.Theme.Theme
		payload["theme_variant"] = opts.Theme.Variant
	}

	name := formTemplate
	if candidate := strings.TrimSpace(partials[formPartialKey]); candidate != "" {
		name = candidate
	}
	result, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) resolveStylesheets(cfg *theme.RendererConfig, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if cfg != nil && cfg.AssetURL != nil {
			if resolved := cfg.AssetURL(name); resolved != "" {
				out = append(out, resolved)
				continue
			}
		}
		out = append(out, r.assetPrefix+name)
	}
	return out
}

func themeStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString("<style data-formfields-theme>:root{")
	for _, key := range sortedKeys(cfg.CSSVars) {
		if !strings.HasPrefix(key, "--") {
			continue
		}
		builder.WriteString(cssSafe(key))
		builder.WriteByte(':')
		builder.WriteString(cssSafe(cfg.CSSVars[key]))
		builder.WriteByte(';')
	}
	builder.WriteString("}</style>")
	return builder.String()
}

// cssSafe drops characters that could terminate the declaration or the
// style element.
func cssSafe(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', ';', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(value))
}

func scriptTags(scripts []components.Script) string {
	var builder strings.Builder
	for _, script := range scripts {
		builder.WriteString("<script")
		if script.Module {
			builder.WriteString(` type="module"`)
		} else if script.Type != "" {
			builder.WriteString(` type="`)
			builder.WriteString(html.EscapeString(script.Type))
			builder.WriteString(`"`)
		}
		if script.Src != "" {
			builder.WriteString(` src="`)
			builder.WriteString(html.EscapeString(script.Src))
			builder.WriteString(`"`)
		}
		if script.Async {
			builder.WriteString(" async")
		}
		if script.Defer {
			builder.WriteString(" defer")
		}
		builder.WriteString(">")
		if script.Src == "" {
			builder.WriteString(script.Inline)
		}
		builder.WriteString("</script>\n")
	}
	return builder.String()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
