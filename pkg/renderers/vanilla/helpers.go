package vanilla

import (
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla/components"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// sanitizeInline keeps inline formatting in help and feedback text and strips
// everything else.
func sanitizeInline(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(inlineSanitizer().Sanitize(trimmed))
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		inlinePolicy = policy
	})
	return inlinePolicy
}

func labelID(controlID string) string {
	if controlID == "" {
		return ""
	}
	return controlID + "-label"
}

func feedbackID(controlID string) string {
	if controlID == "" {
		return ""
	}
	return controlID + "-feedback"
}

// labelSupportsFor reports whether the component exposes a single focusable
// control the label can point at.
func labelSupportsFor(componentName string) bool {
	switch componentName {
	case components.NameCheckbox, components.NameRadio:
		return false
	default:
		return true
	}
}

func componentsForKinds(kinds []model.FieldKind) []string {
	seen := make(map[string]struct{}, len(kinds)+1)
	for _, kind := range kinds {
		seen[string(kind)] = struct{}{}
		if kind == model.FieldKindText {
			seen[components.NameTextarea] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
