package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Rules are host-side checks that produce the Error/Warning flags carried by
// model.Meta. Fields never run them; the reference host does.
type Rules struct {
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinSelected *int   `json:"minSelected,omitempty" yaml:"minSelected,omitempty"`
	MaxSelected *int   `json:"maxSelected,omitempty" yaml:"maxSelected,omitempty"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// SoftMaxLength produces a warning rather than an error.
	SoftMaxLength *int `json:"softMaxLength,omitempty" yaml:"softMaxLength,omitempty"`
	// Layout marks string values that must parse as a time.
	Layout string `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// Check validates value and returns the error and warning texts, empty when
// absent.
func (r Rules) Check(value any) (errText, warnText string) {
	switch v := value.(type) {
	case nil:
		if r.Required {
			return "required", ""
		}
		return "", ""
	case string:
		return r.checkString(v)
	case bool:
		if r.Required && !v {
			return "required", ""
		}
		return "", ""
	case time.Time:
		if r.Required && v.IsZero() {
			return "required", ""
		}
		return "", ""
	}

	list := model.Values(value)
	if r.Required && len(list) == 0 {
		return "required", ""
	}
	if r.MinSelected != nil && len(list) < *r.MinSelected {
		return fmt.Sprintf("select at least %d", *r.MinSelected), ""
	}
	if r.MaxSelected != nil && len(list) > *r.MaxSelected {
		return fmt.Sprintf("select at most %d", *r.MaxSelected), ""
	}
	return "", ""
}

func (r Rules) checkString(value string) (string, string) {
	if strings.TrimSpace(value) == "" {
		if r.Required {
			return "required", ""
		}
		return "", ""
	}
	if r.MinLength != nil && len(value) < *r.MinLength {
		return fmt.Sprintf("min length %d", *r.MinLength), ""
	}
	if r.MaxLength != nil && len(value) > *r.MaxLength {
		return fmt.Sprintf("max length %d", *r.MaxLength), ""
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Sprintf("invalid pattern %q", r.Pattern), ""
		}
		if !re.MatchString(value) {
			return "does not match required pattern", ""
		}
	}
	if r.Layout != "" {
		if _, err := time.Parse(r.Layout, value); err != nil {
			return fmt.Sprintf("expected format %s", r.Layout), ""
		}
	}
	if r.SoftMaxLength != nil && len(value) > *r.SoftMaxLength {
		return "", fmt.Sprintf("longer than the recommended %d characters", *r.SoftMaxLength)
	}
	return "", ""
}
