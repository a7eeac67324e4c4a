// Package tui collects form values in a terminal. Every answer is fed through
// the field adapters, so the host sees the same blur and change events a
// browser widget would produce.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

const noneLabel = "(none)"

// Session prompts the fields of a definition one by one.
type Session struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	formOptions       []form.Option
	values            map[string]any
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *slog.Logger
}

// New constructs a session with defaults (survey driver, JSON output).
func New(options ...Option) *Session {
	s := &Session{
		out:          os.Stdout,
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s
}

// Name reports the renderer identifier.
func (s *Session) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Run.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run builds def against a fresh host, prompts every field and returns the
// serialized values.
func (s *Session) Run(ctx context.Context, def definition.Definition) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	host := form.NewHost(form.WithValues(s.values), form.WithHostLogger(s.logger))
	options := append([]form.Option{form.WithLogger(s.logger)}, s.formOptions...)
	built, err := form.Build(def, host, options...)
	if err != nil {
		return nil, fmt.Errorf("tui: build form: %w", err)
	}
	defer built.Close()

	values, err := s.Collect(ctx, built)
	if err != nil {
		return nil, err
	}
	return serialize(s.outputFormat, values)
}

// Collect prompts every field of f and returns the host values after submit.
func (s *Session) Collect(ctx context.Context, f *form.Form) (map[string]any, error) {
	if s.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	for _, field := range f.Fields() {
		if err := s.promptField(ctx, f.Host(), field); err != nil {
			return nil, err
		}
	}
	if !f.Submit() {
		s.logger.Warn("tui: form submitted with errors", "form", f.Definition().ID)
	}

	values := f.Host().Values()
	if s.submitTransformer != nil {
		var err error
		values, err = s.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return values, nil
}

func (s *Session) promptField(ctx context.Context, host *form.Host, field fields.Field) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		field.Focus()
		err := s.ask(ctx, host, field)
		switch {
		case errors.Is(err, errRetry):
		case err != nil:
			return err
		default:
			result := field.Result()
			s.logger.Debug("tui: field answered", "field", field.Name(), "state", result.State.String(), "attempt", attempt)
			if result.State != validation.StateError {
				if result.State == validation.StateWarning {
					s.notify(ctx, color.FgYellow, s.theme.WarningPrefix, field, result.Message)
				}
				return nil
			}
			s.notify(ctx, color.FgRed, s.theme.ErrorPrefix, field, result.Message)
		}

		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: field %q", ErrTooManyAttempts, field.Name())
		}
	}
}

func (s *Session) ask(ctx context.Context, host *form.Host, field fields.Field) error {
	switch f := field.(type) {
	case *fields.Text:
		return s.askText(ctx, f, precheck(host, f, func(raw string) any { return raw }))
	case *fields.DateTime:
		return s.askDateTime(ctx, f, precheck(host, f, f.Parse))
	case *fields.Toggle:
		return s.askToggle(ctx, f)
	case *fields.CheckboxGroup:
		return s.askCheckbox(ctx, f)
	case *fields.RadioGroup:
		return s.askRadio(ctx, f)
	case *fields.Select:
		return s.askSelect(ctx, f)
	default:
		return fmt.Errorf("%w: %q (%s)", ErrUnsupportedField, field.Name(), field.Kind())
	}
}

func (s *Session) askText(ctx context.Context, f *fields.Text, check func(string) error) error {
	view := f.View()
	q := question(AskLine, view)
	q.Default = view.Value
	q.Check = check
	switch view.InputType {
	case "password":
		q.Kind = AskSecret
		q.Default = ""
	case "textarea":
		q.Kind = AskMultiline
	}
	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	f.Change(answer.Text)
	f.Blur()
	return nil
}

func (s *Session) askDateTime(ctx context.Context, f *fields.DateTime, check func(string) error) error {
	view := f.View()
	q := question(AskLine, view)
	q.Default = view.Value
	if q.Help == "" {
		q.Help = "Format: " + f.Layout()
	}
	q.Check = func(raw string) error { return check(strings.TrimSpace(raw)) }
	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	f.Change(strings.TrimSpace(answer.Text))
	f.Blur()
	return nil
}

func (s *Session) askToggle(ctx context.Context, f *fields.Toggle) error {
	view := f.View()
	q := question(AskConfirm, view)
	q.DefaultOn = f.Checked()
	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	f.Set(answer.On)
	return nil
}

func (s *Session) askCheckbox(ctx context.Context, f *fields.CheckboxGroup) error {
	view := f.View()
	options := f.Options()
	var defaults []int
	for idx, opt := range options {
		if f.Checked(opt.Value) {
			defaults = append(defaults, idx)
		}
	}

	q := question(AskChoices, view)
	q.Choices = optionLabels(options)
	q.Chosen = defaults
	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}

	want := make(map[int]bool, len(answer.Chosen))
	for _, idx := range answer.Chosen {
		want[idx] = true
	}
	changed := false
	for idx, opt := range options {
		if want[idx] == f.Checked(opt.Value) {
			continue
		}
		if err := f.ToggleIndex(idx, want[idx]); err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		f.Blur()
	}
	return nil
}

func (s *Session) askRadio(ctx context.Context, f *fields.RadioGroup) error {
	view := f.View()
	options := f.Options()
	labels := optionLabels(options)
	offset := 0
	if !view.Required {
		labels = append([]string{noneLabel}, labels...)
		offset = 1
	}
	current := checkedIndices(view, options)
	defaultIndex := 0
	if len(current) > 0 {
		defaultIndex = current[0] + offset
	}

	q := question(AskChoice, view)
	q.Choices = labels
	q.Chosen = []int{defaultIndex}
	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	idx := answer.index()

	switch {
	case idx < 0:
		f.Blur()
	case idx < offset:
		// Selecting the current value again deselects it.
		if len(current) > 0 {
			f.Select(options[current[0]].Value)
			return nil
		}
		f.Blur()
	case idx-offset >= len(options):
		f.Blur()
	case len(current) > 0 && current[0] == idx-offset:
		f.Blur()
	default:
		return f.SelectIndex(idx - offset)
	}
	return nil
}

func (s *Session) askSelect(ctx context.Context, f *fields.Select) error {
	view := f.View()
	options := f.Options()
	if f.Async() {
		search := question(AskLine, view)
		search.Message += " (search)"
		query, err := s.driver.Ask(ctx, search)
		if err != nil {
			return err
		}
		loaded, err := f.Load(ctx, strings.TrimSpace(query.Text))
		if err != nil {
			s.logger.Warn("tui: load options failed", "field", f.Name(), "error", err)
			s.notify(ctx, color.FgRed, s.theme.ErrorPrefix, f, err.Error())
			return errRetry
		}
		options = loaded
	}
	current := checkedIndices(view, options)

	if f.Multiple() {
		q := question(AskChoices, view)
		q.Choices = optionLabels(options)
		q.Chosen = current
		answer, err := s.driver.Ask(ctx, q)
		if err != nil {
			return err
		}
		selected := make([]model.Option, 0, len(answer.Chosen))
		for _, idx := range answer.Chosen {
			if idx >= 0 && idx < len(options) {
				selected = append(selected, options[idx])
			}
		}
		f.Choose(selected)
		f.Blur()
		return nil
	}

	labels := optionLabels(options)
	offset := 0
	if !view.Required || len(options) == 0 {
		labels = append([]string{noneLabel}, labels...)
		offset = 1
	}
	defaultIndex := 0
	if len(current) > 0 {
		defaultIndex = current[0] + offset
	}
	q := question(AskChoice, view)
	q.Choices = labels
	q.Chosen = []int{defaultIndex}
	answer, err := s.driver.Ask(ctx, q)
	if err != nil {
		return err
	}
	idx := answer.index()
	if idx < offset || idx-offset >= len(options) {
		f.Choose(nil)
	} else {
		f.Choose([]model.Option{options[idx-offset]})
	}
	f.Blur()
	return nil
}

func (s *Session) notify(ctx context.Context, attr color.Attribute, prefix string, field fields.Field, message string) {
	painter := color.New(attr)
	if s.theme.NoColor {
		painter.DisableColor()
	}
	label := field.Props().Label
	if label == "" {
		label = field.Name()
	}
	text := strings.TrimSpace(fmt.Sprintf("%s %s: %s", prefix, label, message))
	if err := s.driver.Notify(ctx, painter.Sprint(text)); err != nil {
		s.logger.Warn("tui: print message failed", "field", field.Name(), "error", err)
	}
}

func question(kind QuestionKind, view fields.View) Question {
	return Question{Kind: kind, Field: view.Name, Message: promptLabel(view), Help: view.HelpText}
}

// precheck vets a typed answer with the host rules and the field's deriver
// before it is committed, so drivers can reject it in place. convert turns
// the raw text into the value the field would report.
func precheck(host *form.Host, field fields.Field, convert func(string) any) func(string) error {
	rules, _ := host.Rules(field.Name())
	derive := validation.Resolve(field.Props().Validator)
	return func(raw string) error {
		errText, warnText := rules.Check(convert(raw))
		result := derive(model.Meta{Touched: true, Error: errText, Warning: warnText})
		if result.State == validation.StateError {
			return errors.New(result.Message)
		}
		return nil
	}
}

func promptLabel(view fields.View) string {
	label := view.Label
	if label == "" {
		label = view.Name
	}
	if view.Required {
		label += " *"
	}
	return label
}

func optionLabels(options []model.Option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if label == "" {
			label = model.ValueText(opt.Value)
		}
		out = append(out, label)
	}
	return out
}

// checkedIndices returns the indices of options whose value is checked in
// view.
func checkedIndices(view fields.View, options []model.Option) []int {
	checked := make(map[string]struct{})
	for _, opt := range view.Options {
		if opt.Checked {
			checked[opt.Value] = struct{}{}
		}
	}
	var out []int
	for idx, opt := range options {
		if _, ok := checked[model.ValueText(opt.Value)]; ok {
			out = append(out, idx)
		}
	}
	return out
}
