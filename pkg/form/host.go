package form

import (
	"io"
	"log/slog"
	"sort"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// EventKind names a callback a field invoked on the host.
type EventKind string

const (
	EventChange EventKind = "change"
	EventBlur   EventKind = "blur"
	EventFocus  EventKind = "focus"
)

// Event is delivered to subscribers after the host applied a callback.
type Event struct {
	Kind  EventKind
	Field string
	Value any
}

// HostOption customises a Host.
type HostOption func(*Host)

// WithValues seeds the host with initial values.
func WithValues(values map[string]any) HostOption {
	return func(h *Host) {
		h.state = NewState(values, h.state.errors)
	}
}

// WithErrors seeds the host with server-side errors keyed by field path.
func WithErrors(errs map[string][]string) HostOption {
	return func(h *Host) {
		h.state.errors = cloneErrors(errs)
	}
}

// WithRules attaches validation rules to a field.
func WithRules(name string, rules validation.Rules) HostOption {
	return func(h *Host) {
		h.rules[name] = rules
	}
}

// WithHostLogger sets the logger used for debug traces of field events.
func WithHostLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Host owns form values and validation flags on behalf of the fields.
// Rule violations surface in Meta once a field is touched; server errors
// surface immediately and are cleared by the next change of the field.
type Host struct {
	state     *State
	rules     map[string]validation.Rules
	listeners map[int]func(Event)
	nextID    int
	logger    *slog.Logger
}

// NewHost constructs an empty host.
func NewHost(options ...HostOption) *Host {
	h := &Host{
		state:     NewState(nil, nil),
		rules:     make(map[string]validation.Rules),
		listeners: make(map[int]func(Event)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// State exposes the underlying state.
func (h *Host) State() *State {
	return h.state
}

// SetRules replaces the rules attached to name.
func (h *Host) SetRules(name string, rules validation.Rules) {
	h.rules[name] = rules
}

// Rules returns the rules attached to name.
func (h *Host) Rules(name string) (validation.Rules, bool) {
	rules, ok := h.rules[name]
	return rules, ok
}

// Value returns the current value of name.
func (h *Host) Value(name string) any {
	value, _ := h.state.GetValue(name)
	return value
}

// Values returns a copy of every collected value.
func (h *Host) Values() map[string]any {
	return h.state.Values()
}

// Input returns the input contract for name. The value is captured now; the
// callbacks always write through to the host.
func (h *Host) Input(name string) model.Input {
	return model.Input{
		Name:  name,
		Value: h.Value(name),
		OnChange: func(value any) {
			if err := h.state.SetValue(name, value); err != nil {
				h.logger.Warn("form: change rejected", "field", name, "error", err)
				return
			}
			h.state.SetErrors(name, nil)
			h.emit(Event{Kind: EventChange, Field: name, Value: value})
		},
		OnBlur: func(value any) {
			h.state.Touch(name)
			h.emit(Event{Kind: EventBlur, Field: name, Value: value})
		},
		OnFocus: func() {
			h.emit(Event{Kind: EventFocus, Field: name})
		},
	}
}

// Meta returns the validation flags of name.
func (h *Host) Meta(name string) model.Meta {
	meta := model.Meta{Touched: h.state.Touched(name)}
	if errs := h.state.ErrorsFor(name); len(errs) > 0 {
		// Server errors follow a submission, so the field counts as touched.
		meta.Touched = true
		meta.Error = errs[0]
		return meta
	}
	if !meta.Touched {
		return meta
	}
	if rules, ok := h.rules[name]; ok {
		meta.Error, meta.Warning = rules.Check(h.Value(name))
	}
	return meta
}

// SetServerErrors attaches server-side messages to fields.
func (h *Host) SetServerErrors(errs map[string][]string) {
	for name, messages := range errs {
		h.state.SetErrors(name, messages)
	}
}

// TouchAll marks names as touched, typically before a submit.
func (h *Host) TouchAll(names ...string) {
	for _, name := range names {
		h.state.Touch(name)
	}
}

// Valid reports whether none of names carries an error once touched.
func (h *Host) Valid(names ...string) bool {
	for _, name := range names {
		if errs := h.state.ErrorsFor(name); len(errs) > 0 {
			return false
		}
		if rules, ok := h.rules[name]; ok {
			if errText, _ := rules.Check(h.Value(name)); errText != "" {
				return false
			}
		}
	}
	return true
}

// Subscribe registers fn for every event and returns a function removing it.
// Subscribers run in registration order.
func (h *Host) Subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		delete(h.listeners, id)
	}
}

func (h *Host) emit(evt Event) {
	h.logger.Debug("form: field event", "kind", evt.Kind, "field", evt.Field)
	ids := make([]int, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := h.listeners[id]; ok {
			fn(evt)
		}
	}
}
