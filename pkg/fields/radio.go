package fields

import "github.com/goliatone/go-formfields/pkg/model"

// RadioGroupConfig configures a radio group.
type RadioGroupConfig struct {
	Props
	Choices
}

// RadioGroup adapts exclusive radio inputs onto a single-value field.
type RadioGroup struct {
	binding
	options []model.Option
}

var _ Field = (*RadioGroup)(nil)

// NewRadioGroup mounts a radio group.
func NewRadioGroup(cfg RadioGroupConfig) *RadioGroup {
	f := &RadioGroup{options: cfg.Choices.resolve()}
	f.bind(cfg.Props)
	return f
}

// Kind reports FieldKindRadio.
func (f *RadioGroup) Kind() model.FieldKind {
	return model.FieldKindRadio
}

// Options returns the resolved options.
func (f *RadioGroup) Options() []model.Option {
	return append([]model.Option(nil), f.options...)
}

// Select reports a change event for value: OnBlur(nil) then OnChange(value),
// or OnChange(nil) when value is already the current value (deselect).
func (f *RadioGroup) Select(value any) {
	next := value
	if sameValue(f.props.Input.Value, value) {
		next = nil
	}
	f.props.Input.Blur(nil)
	f.props.Input.Change(next)
}

// SelectIndex selects the option at index.
func (f *RadioGroup) SelectIndex(index int) error {
	if index < 0 || index >= len(f.options) {
		return ErrOptionIndex
	}
	f.Select(f.options[index].Value)
	return nil
}

// View snapshots the field for rendering.
func (f *RadioGroup) View() View {
	view := f.baseView(model.FieldKindRadio)
	current := f.props.Input.Value
	view.Options = optionViews(f.props.Input.Name, f.options, func(opt model.Option) bool {
		return current != nil && sameValue(current, opt.Value)
	})
	return view
}
