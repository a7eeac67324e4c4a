package fields

import (
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// View is the renderer-neutral snapshot of a field.
type View struct {
	Kind       model.FieldKind   `json:"kind"`
	Name       string            `json:"name"`
	ControlID  string            `json:"controlId"`
	Label      string            `json:"label,omitempty"`
	HelpText   string            `json:"helpText,omitempty"`
	Required   bool              `json:"required,omitempty"`
	Disabled   bool              `json:"disabled,omitempty"`
	Validation validation.Result `json:"validation"`
	Attrs      map[string]string `json:"attrs,omitempty"`

	// Text and date-time controls.
	InputType   string `json:"inputType,omitempty"`
	Value       string `json:"value,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`

	// Choice controls.
	Options  []OptionView `json:"options,omitempty"`
	Multiple bool         `json:"multiple,omitempty"`
	Async    bool         `json:"async,omitempty"`

	// Toggle controls.
	Checked  bool   `json:"checked,omitempty"`
	OnLabel  string `json:"onLabel,omitempty"`
	OffLabel string `json:"offLabel,omitempty"`
}

// OptionView describes one rendered choice.
type OptionView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Checked bool   `json:"checked,omitempty"`
}

// Selected returns the checked options.
func (v View) Selected() []OptionView {
	var out []OptionView
	for _, opt := range v.Options {
		if opt.Checked {
			out = append(out, opt)
		}
	}
	return out
}
