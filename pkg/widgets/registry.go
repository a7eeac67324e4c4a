package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Matcher decides whether a field kind should handle the supplied definition.
type Matcher func(field definition.Field) bool

type rule struct {
	kind     model.FieldKind
	priority int
	match    Matcher
	order    int
}

// Registry infers field kinds for definitions that do not name one. Higher
// priority wins; ties fall back to registration order. An empty registry
// never resolves a kind.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind with the provided priority. Higher
// priority values take precedence.
func (r *Registry) Register(kind model.FieldKind, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	if strings.TrimSpace(string(kind)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for a field. An explicit, recognised Kind is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field definition.Field) (model.FieldKind, bool) {
	if field.Kind != "" {
		return model.ParseFieldKind(field.Kind)
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.kind, true
		}
	}
	return "", false
}

// Decorate writes the resolved kind into every field of def that lacks one.
func (r *Registry) Decorate(def *definition.Definition) {
	if r == nil || def == nil {
		return
	}
	for idx := range def.Fields {
		field := &def.Fields[idx]
		if field.Kind != "" {
			continue
		}
		if kind, ok := r.Resolve(*field); ok {
			field.Kind = string(kind)
		}
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(model.FieldKindToggle, 90, func(field definition.Field) bool {
		return strings.EqualFold(field.DataType, "boolean")
	})

	r.Register(model.FieldKindCheckbox, 80, func(field definition.Field) bool {
		return field.Multiple && field.HasOptions() && field.Endpoint == nil
	})

	r.Register(model.FieldKindSelect, 70, func(field definition.Field) bool {
		return field.HasOptions() || field.Endpoint != nil
	})

	r.Register(model.FieldKindDateTime, 60, func(field definition.Field) bool {
		switch strings.ToLower(strings.TrimSpace(field.Format)) {
		case "date-time", "datetime", "date", "time":
			return true
		}
		return field.Layout != ""
	})

	r.Register(model.FieldKindText, 0, func(definition.Field) bool {
		return true
	})
}
