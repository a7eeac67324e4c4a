package fields

import (
	"strings"
	"time"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Layouts understood by the date-time field. LayoutDateTimeLocal matches the
// value format of HTML datetime-local inputs.
const (
	LayoutDateTimeLocal = "2006-01-02T15:04"
	LayoutDate          = "2006-01-02"
	LayoutTime          = "15:04"
)

// DateTimeConfig configures a date-time field.
type DateTimeConfig struct {
	Props
	// Layout is the time layout used to parse and format values. Defaults to
	// LayoutDateTimeLocal.
	Layout      string
	Location    *time.Location
	Placeholder string
}

// DateTime adapts a date/time picker. Parseable input is reported as a
// time.Time, blank input as nil and anything else as the raw string so host
// validation can flag it.
type DateTime struct {
	binding
	layout      string
	location    *time.Location
	placeholder string
}

var _ Field = (*DateTime)(nil)

// NewDateTime mounts a date-time field.
func NewDateTime(cfg DateTimeConfig) *DateTime {
	f := &DateTime{
		layout:      strings.TrimSpace(cfg.Layout),
		location:    cfg.Location,
		placeholder: cfg.Placeholder,
	}
	if f.layout == "" {
		f.layout = LayoutDateTimeLocal
	}
	if f.location == nil {
		f.location = time.UTC
	}
	f.bind(cfg.Props)
	return f
}

// Kind reports FieldKindDateTime.
func (f *DateTime) Kind() model.FieldKind {
	return model.FieldKindDateTime
}

// Layout returns the configured time layout.
func (f *DateTime) Layout() string {
	return f.layout
}

// Change parses raw and reports the result.
func (f *DateTime) Change(raw string) {
	f.props.Input.Change(f.Parse(raw))
}

// Parse converts raw control text into the value reported to the host.
func (f *DateTime) Parse(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(f.layout, trimmed, f.location)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, trimmed); err != nil {
			return raw
		}
	}
	return parsed
}

// Format renders a host value using the field layout.
func (f *DateTime) Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.In(f.location).Format(f.layout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.In(f.location).Format(f.layout)
	case string:
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed.In(f.location).Format(f.layout)
		}
		return v
	default:
		return model.ValueText(v)
	}
}

// View snapshots the field for rendering.
func (f *DateTime) View() View {
	view := f.baseView(model.FieldKindDateTime)
	view.InputType = htmlInputType(f.layout)
	view.Placeholder = f.placeholder
	if view.Placeholder == "" && view.InputType == "text" {
		view.Placeholder = f.layout
	}
	view.Value = f.Format(f.props.Input.Value)
	return view
}

func htmlInputType(layout string) string {
	switch layout {
	case LayoutDateTimeLocal:
		return "datetime-local"
	case LayoutDate:
		return "date"
	case LayoutTime:
		return "time"
	default:
		return "text"
	}
}
