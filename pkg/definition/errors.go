package definition

import "errors"

var (
	// ErrEmptyDocument is returned when a definition source has no content.
	ErrEmptyDocument = errors.New("definition: empty document")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("definition: duplicate field")
	// ErrUnknownKind is returned when a field names a kind no adapter handles.
	ErrUnknownKind = errors.New("definition: unknown field kind")
	// ErrSchemaNotFound is returned when an OpenAPI document lacks the
	// requested schema.
	ErrSchemaNotFound = errors.New("definition: schema not found")
)
