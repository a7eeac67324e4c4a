// Package render defines the renderer contract shared by the HTML and
// terminal outputs, a name-keyed renderer registry and helpers for server
// error payloads and hidden submission fields.
package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/fields"
)

// Renderer converts a form snapshot into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form FormView, options RenderOptions) ([]byte, error)
}

// FormView is the renderer-neutral snapshot of a whole form.
type FormView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Action      string        `json:"action,omitempty"`
	Method      string        `json:"method,omitempty"`
	SubmitLabel string        `json:"submitLabel,omitempty"`
	Fields      []fields.View `json:"fields"`
}

// RenderOptions carry per-request data renderers use without mutating the
// form.
type RenderOptions struct {
	// Method overrides the form method. Verbs browsers cannot submit are sent
	// as POST with a hidden _method input.
	Method string
	// FormErrors are messages not attached to any field.
	FormErrors []string
	// Hidden inputs emitted alongside the fields.
	Hidden map[string]string
	// Theme supplies partial overrides, tokens, CSS variables and asset URLs.
	Theme *theme.RendererConfig
	// Fragment renders the fields without the surrounding form element.
	Fragment bool
}
