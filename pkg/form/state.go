package form

import (
	"fmt"
	"strconv"
	"strings"
)

// State tracks collected values, touched flags and server-provided errors
// keyed by dotted paths.
type State struct {
	values  map[string]any
	errors  map[string][]string
	touched map[string]bool
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	return &State{
		values:  cloneValues(prefill),
		errors:  cloneErrors(errs),
		touched: make(map[string]bool),
	}
}

// Values returns a deep copy of the value map.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return cloneValues(s.values)
}

// Errors returns a copy of the server error map.
func (s *State) Errors() map[string][]string {
	if s == nil {
		return nil
	}
	return cloneErrors(s.errors)
}

// ErrorsFor returns the errors attached to a dotted path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[path]
}

// SetErrors replaces the errors attached to path. An empty list clears them.
func (s *State) SetErrors(path string, messages []string) {
	if s == nil {
		return
	}
	if len(messages) == 0 {
		delete(s.errors, path)
		return
	}
	s.errors[path] = append([]string(nil), messages...)
}

// Touched reports whether path has been blurred at least once.
func (s *State) Touched(path string) bool {
	return s != nil && s.touched[path]
}

// Touch marks path as touched.
func (s *State) Touch(path string) {
	if s == nil {
		return
	}
	s.touched[path] = true
}

// GetValue resolves a dotted path into the values map.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return getPath(s.values, path)
}

// SetValue writes a value using a dotted path, creating intermediate maps and
// slices as needed.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("form: state is nil")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return setPath(s.values, path, value)
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func cloneErrors(src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return make(map[string][]string)
	}
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes value at path. Numeric segments address slice elements;
// containers are created or grown on the way down.
func setPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("form: root map is nil")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("form: empty path")
	}
	segments := strings.Split(path, ".")
	updated, err := assign(root, segments, value)
	if err != nil {
		return fmt.Errorf("form: set %q: %w", path, err)
	}
	if _, ok := updated.(map[string]any); !ok {
		return fmt.Errorf("form: set %q: root replaced", path)
	}
	return nil
}

// assign stores value under segments inside node and returns the possibly
// reallocated node.
func assign(node any, segments []string, value any) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	segment := segments[0]
	rest := segments[1:]

	switch typed := node.(type) {
	case map[string]any:
		child, err := assign(containerFor(typed[segment], rest), rest, value)
		if err != nil {
			return nil, err
		}
		typed[segment] = child
		return typed, nil
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("expected numeric segment, got %q", segment)
		}
		if idx < 0 {
			return nil, fmt.Errorf("negative index %d", idx)
		}
		if len(typed) <= idx {
			typed = append(typed, make([]any, idx+1-len(typed))...)
		}
		child, err := assign(containerFor(typed[idx], rest), rest, value)
		if err != nil {
			return nil, err
		}
		typed[idx] = child
		return typed, nil
	default:
		return nil, fmt.Errorf("unexpected container for segment %q", segment)
	}
}

// containerFor returns current when it can hold the next segment, or a fresh
// map/slice otherwise.
func containerFor(current any, rest []string) any {
	if len(rest) == 0 {
		return current
	}
	if _, err := strconv.Atoi(rest[0]); err == nil {
		if slice, ok := current.([]any); ok {
			return slice
		}
		return []any{}
	}
	switch typed := current.(type) {
	case map[string]any:
		if typed != nil {
			return typed
		}
	case []any:
		return typed
	}
	return make(map[string]any)
}
