package definition

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/model"
)

// ExtensionKey is the vendor extension read from schema properties.
const ExtensionKey = "x-formfields"

// Time layouts assigned to string formats.
const (
	layoutDateTime = "2006-01-02T15:04"
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04"
)

// FromOpenAPI converts an object schema of an OpenAPI 3 document into a
// Definition. target names either a component schema or an operation id, in
// which case the operation's request body schema is used. Properties are
// emitted by their `x-formfields.order` hint, then by name.
func FromOpenAPI(ctx context.Context, data []byte, target string) (Definition, error) {
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: load openapi document: %w", err)
	}

	ref := lookupSchema(doc, strings.TrimSpace(target))
	if ref == nil || ref.Value == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, target)
	}
	schema := ref.Value

	def := Definition{
		ID:          target,
		Title:       schema.Title,
		Description: schema.Description,
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, name := range orderedProperties(schema.Properties) {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		def.Fields = append(def.Fields, fieldFromSchema(name, prop.Value, required[name]))
	}
	def.normalise()
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func lookupSchema(doc *openapi3.T, target string) *openapi3.SchemaRef {
	if target == "" {
		return nil
	}
	if doc.Components != nil {
		if ref, ok := doc.Components.Schemas[target]; ok {
			return ref
		}
	}
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != target {
				continue
			}
			return requestSchema(op.RequestBody)
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	for _, mt := range content {
		if mt != nil {
			return mt.Schema
		}
	}
	return nil
}

func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	order := func(name string) int {
		if ref := props[name]; ref != nil && ref.Value != nil {
			if n, ok := toInt(extension(ref.Value)["order"]); ok {
				return n
			}
		}
		return int(^uint(0) >> 1)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := order(names[i]), order(names[j])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) Field {
	ext := extension(schema)
	field := Field{
		Name:     name,
		Label:    firstNonEmpty(stringValue(ext["label"]), schema.Title, humanize(name)),
		HelpText: firstNonEmpty(stringValue(ext["helpText"]), schema.Description),
		DataType: schemaType(schema.Type),
		Format:   schema.Format,
		Default:  schema.Default,
	}
	field.Rules.Required = required
	field.Kind = firstNonEmpty(stringValue(ext["widget"]), stringValue(ext["kind"]))
	field.Placeholder = stringValue(ext["placeholder"])
	field.LabelKey = stringValue(ext["labelKey"])
	field.ValueKey = stringValue(ext["valueKey"])
	field.Layout = stringValue(ext["layout"])
	field.OnLabel = stringValue(ext["onLabel"])
	field.OffLabel = stringValue(ext["offLabel"])
	field.LegacyReconcile, _ = ext["legacyReconcile"].(bool)
	field.Endpoint = endpointFrom(ext["endpoint"])

	switch field.DataType {
	case "array":
		field.Multiple = true
		if schema.Items != nil && schema.Items.Value != nil {
			field.Options = enumOptions(schema.Items.Value.Enum)
		}
		if schema.MinItems > 0 {
			field.Rules.MinSelected = intPtr(int(schema.MinItems))
		}
		if schema.MaxItems != nil {
			field.Rules.MaxSelected = intPtr(int(*schema.MaxItems))
		}
	case "integer", "number":
		field.InputType = "number"
		field.Options = enumOptions(schema.Enum)
	default:
		field.Options = enumOptions(schema.Enum)
		switch schema.Format {
		case "email", "password", "url", "tel":
			field.InputType = schema.Format
		case "date-time":
			field.Layout = firstNonEmpty(field.Layout, layoutDateTime)
		case "date":
			field.Layout = firstNonEmpty(field.Layout, layoutDate)
		case "time":
			field.Layout = firstNonEmpty(field.Layout, layoutTime)
		}
		if schema.MinLength > 0 {
			field.Rules.MinLength = intPtr(int(schema.MinLength))
		}
		if schema.MaxLength != nil {
			field.Rules.MaxLength = intPtr(int(*schema.MaxLength))
		}
		field.Rules.Pattern = schema.Pattern
	}
	return field
}

func extension(schema *openapi3.Schema) map[string]any {
	if schema == nil || schema.Extensions == nil {
		return nil
	}
	ext, _ := schema.Extensions[ExtensionKey].(map[string]any)
	return ext
}

func endpointFrom(raw any) *Endpoint {
	values, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	endpoint := &Endpoint{
		URL:         stringValue(values["url"]),
		Method:      stringValue(values["method"]),
		ResultsPath: stringValue(values["resultsPath"]),
		QueryParam:  stringValue(values["queryParam"]),
		Params:      stringMap(values["params"]),
		Headers:     stringMap(values["headers"]),
	}
	if strings.TrimSpace(endpoint.URL) == "" {
		return nil
	}
	return endpoint
}

func enumOptions(values []any) []model.Record {
	if len(values) == 0 {
		return nil
	}
	out := make([]model.Record, 0, len(values))
	for _, value := range values {
		out = append(out, model.Record{
			model.DefaultLabelKey: model.ValueText(value),
			model.DefaultValueKey: value,
		})
	}
	return out
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func humanize(name string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	words := strings.Fields(replaced)
	for idx, word := range words {
		if idx == 0 {
			words[idx] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func stringValue(raw any) string {
	s, _ := raw.(string)
	return strings.TrimSpace(s)
}

func stringMap(raw any) map[string]string {
	values, ok := raw.(map[string]any)
	if !ok || len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = model.ValueText(value)
	}
	return out
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func intPtr(v int) *int {
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
