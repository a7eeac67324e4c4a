package tui

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-formfields/pkg/form"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch format := OutputFormat(raw); format {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, true
	case "":
		return OutputFormatJSON, true
	default:
		return "", false
	}
}

// Theme holds the prefixes printed in front of validation messages.
type Theme struct {
	ErrorPrefix   string
	WarningPrefix string
	NoColor       bool
}

// DefaultTheme returns the prefixes used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{ErrorPrefix: "✗", WarningPrefix: "!"}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the survey driver prints info messages.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithHTTPClient sets the client used by endpoint-backed selects.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Session) {
		if client != nil {
			s.formOptions = append(s.formOptions, form.WithHTTPClient(client))
		}
	}
}

// WithFormOptions forwards options to form.Build.
func WithFormOptions(options ...form.Option) Option {
	return func(s *Session) {
		s.formOptions = append(s.formOptions, options...)
	}
}

// WithValues prefills the host before prompting.
func WithValues(values map[string]any) Option {
	return func(s *Session) {
		s.values = values
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(s *Session) {
		s.submitTransformer = fn
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxAttempts bounds how often a field is re-prompted while invalid.
// Zero means no bound.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
