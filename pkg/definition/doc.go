// Package definition describes forms declaratively. Definitions are loaded
// from YAML or JSON documents, or derived from an OpenAPI component schema,
// and are turned into live field adapters by package form.
package definition
