package model

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	DefaultLabelKey = "label"
	DefaultValueKey = "value"
)

// Record is a loosely shaped option payload supplied by a host or loader.
type Record map[string]any

// Option is a resolved choice. Value is the option identity.
type Option struct {
	Label  string `json:"label"`
	Value  any    `json:"value"`
	Record Record `json:"-"`
}

// Keys names the record attributes holding an option's label and value.
type Keys struct {
	Label string `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	Value string `json:"valueKey,omitempty" yaml:"valueKey,omitempty"`
}

// DefaultKeys returns the `label`/`value` strategy.
func DefaultKeys() Keys {
	return Keys{Label: DefaultLabelKey, Value: DefaultValueKey}
}

// Normalize fills blank keys with the defaults.
func (k Keys) Normalize() Keys {
	k.Label = strings.TrimSpace(k.Label)
	k.Value = strings.TrimSpace(k.Value)
	if k.Label == "" {
		k.Label = DefaultLabelKey
	}
	if k.Value == "" {
		k.Value = DefaultValueKey
	}
	return k
}

// Option resolves a record. Missing attributes yield an empty label and a nil
// value.
func (k Keys) Option(record Record) Option {
	k = k.Normalize()
	opt := Option{Record: record}
	if record == nil {
		return opt
	}
	opt.Value = record[k.Value]
	opt.Label = labelText(record[k.Label])
	return opt
}

// Options resolves every record in order.
func (k Keys) Options(records []Record) []Option {
	if len(records) == 0 {
		return nil
	}
	k = k.Normalize()
	out := make([]Option, 0, len(records))
	for _, record := range records {
		out = append(out, k.Option(record))
	}
	return out
}

// Record builds a record carrying opt under the configured keys, the inverse
// of Option for options that were constructed directly.
func (k Keys) Record(opt Option) Record {
	if opt.Record != nil {
		return opt.Record
	}
	k = k.Normalize()
	return Record{k.Label: opt.Label, k.Value: opt.Value}
}

// ValueText renders an option value for markup attributes and prompts.
func ValueText(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func labelText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Values coerces a host value into a selection list. Nil yields nil, slices
// are copied element by element and any other value becomes a one-element
// list.
func Values(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		if len(v) == 0 {
			return nil
		}
		return append([]any(nil), v...)
	case []string:
		if len(v) == 0 {
			return nil
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{value}
}
