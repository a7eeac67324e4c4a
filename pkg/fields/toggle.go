package fields

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
)

// ToggleConfig configures an on/off switch.
type ToggleConfig struct {
	Props
	OnLabel  string
	OffLabel string
}

// Toggle adapts a boolean switch.
type Toggle struct {
	binding
	onLabel  string
	offLabel string
}

var _ Field = (*Toggle)(nil)

// NewToggle mounts a toggle field.
func NewToggle(cfg ToggleConfig) *Toggle {
	f := &Toggle{onLabel: cfg.OnLabel, offLabel: cfg.OffLabel}
	if f.onLabel == "" {
		f.onLabel = "On"
	}
	if f.offLabel == "" {
		f.offLabel = "Off"
	}
	f.bind(cfg.Props)
	return f
}

// Kind reports FieldKindToggle.
func (f *Toggle) Kind() model.FieldKind {
	return model.FieldKindToggle
}

// Checked reports the current switch position.
func (f *Toggle) Checked() bool {
	return truthy(f.props.Input.Value)
}

// Set reports OnBlur(nil) followed by OnChange(on).
func (f *Toggle) Set(on bool) {
	f.props.Input.Blur(nil)
	f.props.Input.Change(on)
}

// Flip inverts the current position.
func (f *Toggle) Flip() {
	f.Set(!f.Checked())
}

// View snapshots the field for rendering.
func (f *Toggle) View() View {
	view := f.baseView(model.FieldKindToggle)
	view.Checked = f.Checked()
	view.OnLabel = f.onLabel
	view.OffLabel = f.offLabel
	view.Value = "true"
	return view
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}
