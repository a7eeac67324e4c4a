// Package selection reconciles multi-value field selections. Every function
// returns nil instead of an empty slice so "nothing selected" has a single
// canonical value.
package selection

import (
	"github.com/samber/lo"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Toggle applies a checkbox-style toggle: checked adds toggled to current,
// unchecked removes it. Existing order is preserved and new values are
// appended.
//
// V must hold hashable values. Callers reconciling dynamic values that may
// be slices or maps reconcile over comparable identities instead.
func Toggle[V comparable](current []V, toggled V, checked bool) []V {
	if checked {
		return normalize(lo.Union(current, []V{toggled}))
	}
	return normalize(lo.Without(current, toggled))
}

// Legacy reconciles a combobox that reports its full selection. When every
// selected value is already part of current, the change is treated as a
// removal and the intersection is kept; otherwise the selection is merged
// into current. Replacing the selection with a disjoint set is therefore
// read as an addition.
func Legacy[V comparable](current, selected []V) []V {
	if lo.Every(current, selected) {
		kept := lo.Intersect(current, selected)
		return normalize(lo.Filter(lo.Uniq(current), func(item V, _ int) bool {
			return lo.Contains(kept, item)
		}))
	}
	return normalize(lo.Union(current, selected))
}

// Replace trusts the widget's selection verbatim, dropping duplicates.
func Replace[V comparable](selected []V) []V {
	return normalize(lo.Uniq(selected))
}

// Contains reports whether value is part of current.
func Contains[V comparable](current []V, value V) bool {
	return lo.Contains(current, value)
}

// Single returns the value of the first selected option, or nil when the
// selection is empty.
func Single(selected []model.Option) any {
	if len(selected) == 0 {
		return nil
	}
	return selected[0].Value
}

// OptionValues extracts option values in order.
func OptionValues(selected []model.Option) []any {
	if len(selected) == 0 {
		return nil
	}
	out := make([]any, 0, len(selected))
	for _, opt := range selected {
		out = append(out, opt.Value)
	}
	return out
}

func normalize[V comparable](values []V) []V {
	if len(values) == 0 {
		return nil
	}
	return values
}
