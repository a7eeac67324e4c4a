package fields

import (
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/selection"
)

// CheckboxGroupConfig configures a checkbox group.
type CheckboxGroupConfig struct {
	Props
	Choices
}

// CheckboxGroup adapts a list of checkboxes onto a multi-value field. The
// reported value is a []any of option values, or nil when nothing is checked.
type CheckboxGroup struct {
	binding
	options []model.Option
}

var _ Field = (*CheckboxGroup)(nil)

// NewCheckboxGroup mounts a checkbox group.
func NewCheckboxGroup(cfg CheckboxGroupConfig) *CheckboxGroup {
	f := &CheckboxGroup{options: cfg.Choices.resolve()}
	f.bind(cfg.Props)
	return f
}

// Kind reports FieldKindCheckbox.
func (f *CheckboxGroup) Kind() model.FieldKind {
	return model.FieldKindCheckbox
}

// Options returns the resolved options.
func (f *CheckboxGroup) Options() []model.Option {
	return append([]model.Option(nil), f.options...)
}

// Toggle checks or unchecks value. The host is notified with OnBlur(nil)
// followed by OnChange(next).
func (f *CheckboxGroup) Toggle(value any, checked bool) {
	var ids identities
	current := ids.keys(model.Values(f.props.Input.Value))
	next := ids.values(selection.Toggle(current, ids.of(value), checked))
	f.props.Input.Blur(nil)
	f.props.Input.Change(listValue(next))
}

// ToggleIndex toggles the option at index.
func (f *CheckboxGroup) ToggleIndex(index int, checked bool) error {
	if index < 0 || index >= len(f.options) {
		return ErrOptionIndex
	}
	f.Toggle(f.options[index].Value, checked)
	return nil
}

// Checked reports whether value is part of the current selection.
func (f *CheckboxGroup) Checked(value any) bool {
	return containsValue(model.Values(f.props.Input.Value), value)
}

// View snapshots the field for rendering. Each checkbox is named
// `name_index`.
func (f *CheckboxGroup) View() View {
	view := f.baseView(model.FieldKindCheckbox)
	view.Multiple = true
	current := model.Values(f.props.Input.Value)
	view.Options = optionViews(f.props.Input.Name, f.options, func(opt model.Option) bool {
		return containsValue(current, opt.Value)
	})
	for idx := range view.Options {
		view.Options[idx].Name = OptionName(f.props.Input.Name, idx)
	}
	return view
}
