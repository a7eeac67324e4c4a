package fields

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
)

// TextConfig configures a text field. Type selects the control variant
// (text, email, password, number, textarea); blank means text.
type TextConfig struct {
	Props
	Type        string
	Placeholder string
}

// Text adapts a free text control.
type Text struct {
	binding
	inputType   string
	placeholder string
}

var _ Field = (*Text)(nil)

// NewText mounts a text field.
func NewText(cfg TextConfig) *Text {
	f := &Text{
		inputType:   strings.TrimSpace(cfg.Type),
		placeholder: cfg.Placeholder,
	}
	if f.inputType == "" {
		f.inputType = "text"
	}
	f.bind(cfg.Props)
	return f
}

// Kind reports FieldKindText.
func (f *Text) Kind() model.FieldKind {
	return model.FieldKindText
}

// Change reports the raw control text.
func (f *Text) Change(raw string) {
	f.props.Input.Change(raw)
}

// View snapshots the field for rendering.
func (f *Text) View() View {
	view := f.baseView(model.FieldKindText)
	view.InputType = f.inputType
	view.Placeholder = f.placeholder
	view.Value = model.ValueText(f.props.Input.Value)
	return view
}
