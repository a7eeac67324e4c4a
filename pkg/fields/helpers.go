package fields

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
)

// ControlID returns the DOM id used for a field's primary control.
func ControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fg-" + trimmed
}

// OptionName returns the per-option input name (`name_index`).
func OptionName(name string, index int) string {
	return name + "_" + strconv.Itoa(index)
}

func optionID(name string, index int) string {
	id := ControlID(name)
	if id == "" {
		return ""
	}
	return id + "-" + strconv.Itoa(index)
}

// Choices is the static option configuration of a choice field. Records are
// resolved with Keys once, when the field is constructed, and appended after
// Options.
type Choices struct {
	Options []model.Option
	Records []model.Record
	Keys    model.Keys
}

func (c Choices) resolve() []model.Option {
	out := make([]model.Option, 0, len(c.Options)+len(c.Records))
	out = append(out, c.Options...)
	out = append(out, c.Keys.Options(c.Records)...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// sameValue compares option identities. Uncomparable values fall back to a
// deep comparison instead of panicking.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func containsValue(list []any, value any) bool {
	for _, item := range list {
		if sameValue(item, value) {
			return true
		}
	}
	return false
}

func findOption(options []model.Option, value any) (model.Option, bool) {
	for _, opt := range options {
		if sameValue(opt.Value, value) {
			return opt, true
		}
	}
	return model.Option{}, false
}

// identities numbers distinct option values so selections can be
// reconciled over comparable keys. Values are matched with sameValue, so
// slices and maps get a key like any other value.
type identities struct {
	known []any
}

func (ids *identities) of(value any) int {
	for idx, known := range ids.known {
		if sameValue(known, value) {
			return idx
		}
	}
	ids.known = append(ids.known, value)
	return len(ids.known) - 1
}

func (ids *identities) keys(values []any) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, 0, len(values))
	for _, value := range values {
		out = append(out, ids.of(value))
	}
	return out
}

func (ids *identities) values(keys []int) []any {
	if len(keys) == 0 {
		return nil
	}
	out := make([]any, 0, len(keys))
	for _, key := range keys {
		out = append(out, ids.known[key])
	}
	return out
}

// listValue converts a reconciled selection into the value reported upward,
// mapping an empty selection to an untyped nil.
func listValue(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values
}

func optionViews(name string, options []model.Option, checked func(model.Option) bool) []OptionView {
	if len(options) == 0 {
		return nil
	}
	out := make([]OptionView, 0, len(options))
	for idx, opt := range options {
		out = append(out, OptionView{
			ID:      optionID(name, idx),
			Name:    name,
			Label:   opt.Label,
			Value:   model.ValueText(opt.Value),
			Checked: checked(opt),
		})
	}
	return out
}

func cloneAttrs(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
