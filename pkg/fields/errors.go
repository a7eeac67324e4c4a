package fields

import "errors"

var (
	// ErrNotAsync is returned by Select.Load when the field has no loader.
	ErrNotAsync = errors.New("fields: select has no option loader")
	// ErrOptionIndex signals an option index outside the configured options.
	ErrOptionIndex = errors.New("fields: option index out of range")
	// ErrUnknownOption signals a value that matches none of the known options.
	ErrUnknownOption = errors.New("fields: unknown option value")
)
