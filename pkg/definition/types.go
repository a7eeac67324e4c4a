package definition

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// Definition is a declarative form.
type Definition struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Action      string  `json:"action,omitempty" yaml:"action,omitempty"`
	Method      string  `json:"method,omitempty" yaml:"method,omitempty"`
	SubmitLabel string  `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field describes a single form field. Kind may be left empty, in which case
// the widget registry infers it from the remaining attributes.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// InputType is the HTML input type of text fields (email, password,
	// number, textarea...).
	InputType string `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	// DataType is the schema type the field was derived from (string,
	// boolean, array...).
	DataType string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty"`
	Layout   string `json:"layout,omitempty" yaml:"layout,omitempty"`

	Options         []model.Record `json:"options,omitempty" yaml:"options,omitempty"`
	LabelKey        string         `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	ValueKey        string         `json:"valueKey,omitempty" yaml:"valueKey,omitempty"`
	Multiple        bool           `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	LegacyReconcile bool           `json:"legacyReconcile,omitempty" yaml:"legacyReconcile,omitempty"`
	Endpoint        *Endpoint      `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	OnLabel  string `json:"onLabel,omitempty" yaml:"onLabel,omitempty"`
	OffLabel string `json:"offLabel,omitempty" yaml:"offLabel,omitempty"`

	Disabled bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Rules    validation.Rules  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Default  any               `json:"default,omitempty" yaml:"default,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Endpoint describes a remote option source for async selects.
type Endpoint struct {
	URL    string `json:"url" yaml:"url"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// ResultsPath is a dotted path to the record list inside the response.
	ResultsPath string `json:"resultsPath,omitempty" yaml:"resultsPath,omitempty"`
	// QueryParam carries the text typed into the widget. Defaults to "q".
	QueryParam string            `json:"queryParam,omitempty" yaml:"queryParam,omitempty"`
	Params     map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Keys returns the normalised label/value strategy of the field.
func (f Field) Keys() model.Keys {
	return model.Keys{Label: f.LabelKey, Value: f.ValueKey}.Normalize()
}

// HasOptions reports whether the field carries static options.
func (f Field) HasOptions() bool {
	return len(f.Options) > 0
}

// Field returns the field named name.
func (d Definition) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists field names in declaration order.
func (d Definition) Names() []string {
	out := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		out = append(out, field.Name)
	}
	return out
}

// Validate checks names are present and unique and explicit kinds are known.
func (d Definition) Validate() error {
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("definition: field %d has no name", idx)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}
		if field.Kind != "" {
			if _, ok := model.ParseFieldKind(field.Kind); !ok {
				return fmt.Errorf("%w: %q (field %q)", ErrUnknownKind, field.Kind, name)
			}
		}
	}
	return nil
}

func (d *Definition) normalise() {
	d.ID = strings.TrimSpace(d.ID)
	for idx := range d.Fields {
		field := &d.Fields[idx]
		field.Name = strings.TrimSpace(field.Name)
		field.Kind = strings.TrimSpace(field.Kind)
		if field.Endpoint != nil {
			field.Endpoint.normalise()
		}
	}
}

func (e *Endpoint) normalise() {
	e.URL = strings.TrimSpace(e.URL)
	e.Method = strings.ToUpper(strings.TrimSpace(e.Method))
	if e.Method == "" {
		e.Method = "GET"
	}
	if strings.TrimSpace(e.QueryParam) == "" {
		e.QueryParam = "q"
	}
}
