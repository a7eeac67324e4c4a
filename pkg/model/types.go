package model

import "strings"

// FieldKind identifies the adapter responsible for a field.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindRadio    FieldKind = "radio"
	FieldKindSelect   FieldKind = "select"
	FieldKindDateTime FieldKind = "datetime"
	FieldKindToggle   FieldKind = "toggle"
)

// Kinds lists the built-in field kinds in a stable order.
func Kinds() []FieldKind {
	return []FieldKind{
		FieldKindText,
		FieldKindCheckbox,
		FieldKindRadio,
		FieldKindSelect,
		FieldKindDateTime,
		FieldKindToggle,
	}
}

// ParseFieldKind normalises raw into a known FieldKind. Common aliases used by
// form definitions ("checkboxes", "date-time", "switch", ...) are accepted.
func ParseFieldKind(raw string) (FieldKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "input", "string", "textarea":
		return FieldKindText, true
	case "checkbox", "checkboxes", "checkbox-group", "checkbox_group":
		return FieldKindCheckbox, true
	case "radio", "radios", "radio-group", "radio_group":
		return FieldKindRadio, true
	case "select", "dropdown", "combobox", "async-select", "async_select":
		return FieldKindSelect, true
	case "datetime", "date-time", "date_time", "date", "time":
		return FieldKindDateTime, true
	case "toggle", "switch", "boolean":
		return FieldKindToggle, true
	default:
		return "", false
	}
}

// Meta carries the validation flags a host supplies on every render. Empty
// Error/Warning strings mean "absent".
type Meta struct {
	Touched bool   `json:"touched" yaml:"touched"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}
