package definition

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Issue is a problem found in the x-formfields hints of an OpenAPI document.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	return i.Location + ": " + i.Message
}

var extensionKeys = map[string]struct{}{
	"order":           {},
	"label":           {},
	"helpText":        {},
	"widget":          {},
	"kind":            {},
	"placeholder":     {},
	"labelKey":        {},
	"valueKey":        {},
	"layout":          {},
	"onLabel":         {},
	"offLabel":        {},
	"legacyReconcile": {},
	"endpoint":        {},
}

// ExtensionKeys lists the keys understood inside x-formfields.
func ExtensionKeys() []string {
	keys := make([]string, 0, len(extensionKeys))
	for key := range extensionKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LintOpenAPI checks every x-formfields hint reachable from component schemas
// and inline request bodies. Referenced schemas are reported once, under
// their component.
func LintOpenAPI(ctx context.Context, data []byte) ([]Issue, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("definition: load openapi document: %w", err)
	}

	var issues []Issue
	if doc.Components != nil {
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			issues = append(issues, lintSchema([]string{"components", "schemas", name}, doc.Components.Schemas[name].Value)...)
		}
	}

	if doc.Paths != nil {
		paths := doc.Paths.Map()
		keys := make([]string, 0, len(paths))
		for key := range paths {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			item := paths[key]
			if item == nil {
				continue
			}
			methods := item.Operations()
			verbs := make([]string, 0, len(methods))
			for verb := range methods {
				verbs = append(verbs, verb)
			}
			sort.Strings(verbs)
			for _, verb := range verbs {
				ref := requestSchema(methods[verb].RequestBody)
				if ref == nil || ref.Ref != "" {
					continue
				}
				issues = append(issues, lintSchema([]string{"paths", key, strings.ToLower(verb), "requestBody"}, ref.Value)...)
			}
		}
	}
	return issues, nil
}

func lintSchema(path []string, schema *openapi3.Schema) []Issue {
	if schema == nil {
		return nil
	}
	issues := lintExtension(path, schema.Extensions[ExtensionKey])

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Ref != "" {
			continue
		}
		issues = append(issues, lintSchema(appendPath(path, "properties", name), ref.Value)...)
	}
	if schema.Items != nil && schema.Items.Ref == "" {
		issues = append(issues, lintSchema(appendPath(path, "items"), schema.Items.Value)...)
	}
	return issues
}

func lintExtension(path []string, raw any) []Issue {
	if raw == nil {
		return nil
	}
	location := strings.Join(path, " > ")
	hints, ok := raw.(map[string]any)
	if !ok {
		return []Issue{{Location: location, Message: fmt.Sprintf("%s must be an object, found %T", ExtensionKey, raw)}}
	}

	keys := make([]string, 0, len(hints))
	for key := range hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var issues []Issue
	for _, key := range keys {
		value := hints[key]
		at := location + " > " + key
		if _, known := extensionKeys[key]; !known {
			issues = append(issues, Issue{Location: at, Message: fmt.Sprintf("unsupported key %q (supported: %s)", key, strings.Join(ExtensionKeys(), ", "))})
			continue
		}
		switch key {
		case "order":
			if _, ok := toInt(value); !ok {
				issues = append(issues, Issue{Location: at, Message: fmt.Sprintf("order must be a number, found %T", value)})
			}
		case "widget", "kind":
			if _, ok := model.ParseFieldKind(stringValue(value)); !ok {
				issues = append(issues, Issue{Location: at, Message: fmt.Sprintf("unknown field kind %v", value)})
			}
		case "legacyReconcile":
			if _, ok := value.(bool); !ok {
				issues = append(issues, Issue{Location: at, Message: fmt.Sprintf("legacyReconcile must be a boolean, found %T", value)})
			}
		case "endpoint":
			if endpointFrom(value) == nil {
				issues = append(issues, Issue{Location: at, Message: "endpoint must be an object with a url"})
			}
		default:
			if _, ok := value.(string); !ok {
				issues = append(issues, Issue{Location: at, Message: fmt.Sprintf("%s must be a string, found %T", key, value)})
			}
		}
	}
	return issues
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}
