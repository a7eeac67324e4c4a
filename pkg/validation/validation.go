// Package validation derives the presentational validation state of a field
// from the touched/error/warning flags its host supplies.
package validation

import "github.com/goliatone/go-formfields/pkg/model"

// State is the validation state shown by a field.
type State string

const (
	StateNone    State = ""
	StateSuccess State = "success"
	StateWarning State = "warning"
	StateError   State = "error"
)

// String returns "none" for the empty state so logs and prompts stay readable.
func (s State) String() string {
	if s == StateNone {
		return "none"
	}
	return string(s)
}

// Result is the derived validation outcome. Message is only set for the
// warning and error states.
type Result struct {
	State   State  `json:"validationState"`
	Message string `json:"errorMessage,omitempty"`
}

// HasMessage reports whether an error block should be rendered.
func (r Result) HasMessage() bool {
	return r.State == StateError || r.State == StateWarning
}

// Deriver maps meta flags to a Result. Hosts may supply their own.
type Deriver func(meta model.Meta) Result

// Derive is the default Deriver.
func Derive(meta model.Meta) Result {
	if !meta.Touched {
		return Result{}
	}
	switch {
	case meta.Error != "":
		return Result{State: StateError, Message: meta.Error}
	case meta.Warning != "":
		return Result{State: StateWarning, Message: meta.Warning}
	default:
		return Result{State: StateSuccess}
	}
}

// Resolve returns custom when set, otherwise Derive. A custom deriver fully
// replaces the default.
func Resolve(custom Deriver) Deriver {
	if custom != nil {
		return custom
	}
	return Derive
}
