package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	partials  map[string]string

	used map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		overrides: overrides,
		partials:  partials,
		used:      make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(view fields.View) (string, error) {
	name := r.componentFor(view)
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", name, view.Name)
	}

	var control bytes.Buffer
	data := components.ComponentData{Template: r.templates, ThemePartials: r.partials}
	if err := descriptor.Renderer(&control, view, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", name, view.Name, err)
	}
	r.used[name] = struct{}{}
	return buildFieldMarkup(view, name, control.String()), nil
}

func (r *componentRenderer) componentFor(view fields.View) string {
	if name := strings.TrimSpace(r.overrides[view.Name]); name != "" {
		return name
	}
	if view.Kind == model.FieldKindText && view.InputType == "textarea" {
		return components.NameTextarea
	}
	if view.Kind == "" {
		return components.NameText
	}
	return string(view.Kind)
}

func (r *componentRenderer) assets() ([]string, []components.Script) {
	names := make([]string, 0, len(r.used))
	for name := range r.used {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Assets(names)
}

// buildFieldMarkup wraps a control with the field chrome: group wrapper,
// label, feedback block and help text.
func buildFieldMarkup(view fields.View, componentName, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	state := view.Validation.State.String()
	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassGroup))
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(view.Name))
	builder.WriteString(`" data-validation-state="`)
	builder.WriteString(html.EscapeString(state))
	builder.WriteString("\">\n")

	if label := strings.TrimSpace(view.Label); label != "" {
		builder.WriteString(`    <label id="`)
		builder.WriteString(html.EscapeString(labelID(view.ControlID)))
		builder.WriteString(`"`)
		if labelSupportsFor(componentName) {
			builder.WriteString(` for="`)
			builder.WriteString(html.EscapeString(view.ControlID))
			builder.WriteString(`"`)
		}
		builder.WriteString(` class="`)
		builder.WriteString(string(ClassLabel))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(label))
		if view.Required {
			builder.WriteString(`<span class="`)
			builder.WriteString(string(ClassRequired))
			builder.WriteString(`" aria-hidden="true"> *</span>`)
		}
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if view.Validation.HasMessage() {
		builder.WriteString(`    <small id="`)
		builder.WriteString(html.EscapeString(feedbackID(view.ControlID)))
		builder.WriteString(`" class="`)
		builder.WriteString(string(ClassFeedback))
		builder.WriteString(`" role="alert">`)
		builder.WriteString(sanitizeInline(view.Validation.Message))
		builder.WriteString("</small>\n")
	}

	if help := sanitizeInline(view.HelpText); help != "" {
		builder.WriteString(`    <small class="`)
		builder.WriteString(string(ClassHelp))
		builder.WriteString(`">`)
		builder.WriteString(help)
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}
