package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry with one component per field kind.
func NewDefaultRegistry() *Registry {
	registry := New()
	base := []string{BaseStylesheet}

	for _, name := range []string{NameText, NameTextarea, NameCheckbox, NameRadio, NameSelect, NameDateTime} {
		registry.MustRegister(name, Descriptor{
			Renderer:    templateComponentRenderer("forms."+name, templatePrefix+name+".tpl"),
			Stylesheets: base,
		})
	}
	registry.MustRegister(NameToggle, Descriptor{
		Renderer:    templateComponentRenderer("forms."+NameToggle, templatePrefix+NameToggle+".tpl"),
		Stylesheets: []string{BaseStylesheet, ToggleStylesheet},
	})
	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, view fields.View, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}
		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{"field": view})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
