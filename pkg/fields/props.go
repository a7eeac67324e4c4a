package fields

import (
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// Props are the host-supplied properties shared by every field kind.
type Props struct {
	Input     model.Input
	Meta      model.Meta
	Label     string
	HelpText  string
	Required  bool
	Disabled  bool
	Validator validation.Deriver
	// Attrs are extra attributes forwarded to the control markup.
	Attrs map[string]string
}

// Field is the behaviour shared by all adapters.
type Field interface {
	Kind() model.FieldKind
	Name() string
	Props() Props
	Result() validation.Result
	Update(props Props)
	Focus()
	Blur()
	View() View
}

// binding holds the current props and the result derived from them.
type binding struct {
	props  Props
	result validation.Result
}

func (b *binding) bind(props Props) {
	b.props = props
	b.result = validation.Resolve(props.Validator)(props.Meta)
}

// Name returns the input name.
func (b *binding) Name() string {
	return b.props.Input.Name
}

// Props returns the props passed on the last mount or update.
func (b *binding) Props() Props {
	return b.props
}

// Result returns the validation result derived on the last mount or update.
func (b *binding) Result() validation.Result {
	return b.result
}

// Update replaces the props and re-derives the validation result.
func (b *binding) Update(props Props) {
	b.bind(props)
}

// Focus forwards a focus event.
func (b *binding) Focus() {
	b.props.Input.Focus()
}

// Blur forwards a blur event without a payload.
func (b *binding) Blur() {
	b.props.Input.Blur(nil)
}

func (b *binding) baseView(kind model.FieldKind) View {
	return View{
		Kind:       kind,
		Name:       b.props.Input.Name,
		ControlID:  ControlID(b.props.Input.Name),
		Label:      b.props.Label,
		HelpText:   b.props.HelpText,
		Required:   b.props.Required,
		Disabled:   b.props.Disabled,
		Validation: b.result,
		Attrs:      cloneAttrs(b.props.Attrs),
	}
}
