package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/samber/lo"
)

// QuestionKind selects the terminal control used for a question.
type QuestionKind int

const (
	// AskLine reads one line of text.
	AskLine QuestionKind = iota
	// AskSecret reads a line without echoing it.
	AskSecret
	// AskMultiline reads free text until an empty line.
	AskMultiline
	// AskConfirm reads yes or no.
	AskConfirm
	// AskChoice picks one entry of Choices.
	AskChoice
	// AskChoices picks any number of entries of Choices.
	AskChoices
)

// Question is one prompt issued for a field.
type Question struct {
	Kind    QuestionKind
	Field   string
	Message string
	Help    string

	// Default prefills text questions; DefaultOn preselects a confirm.
	Default   string
	DefaultOn bool

	// Choices lists option labels; Chosen holds the preselected indices.
	Choices []string
	Chosen  []int

	// Check vets a typed answer before it reaches the field. Drivers able to
	// reject input in place should call it for text questions.
	Check func(answer string) error
}

// Answer carries the response matching the question kind.
type Answer struct {
	Text   string
	On     bool
	Chosen []int
}

// index returns the single chosen index, -1 when nothing was picked.
func (a Answer) index() int {
	if len(a.Chosen) == 0 {
		return -1
	}
	return a.Chosen[0]
}

// PromptDriver talks to the terminal. Sessions only depend on this seam, so
// tests script answers without a terminal.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (Answer, error)
	Notify(ctx context.Context, message string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the interactive driver backed by survey. Notices
// are written to out, stdout when nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Ask(ctx context.Context, q Question) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	prompt := surveyPrompt(q)
	opts := surveyOptions(q)

	var (
		answer Answer
		err    error
	)
	switch q.Kind {
	case AskConfirm:
		err = survey.AskOne(prompt, &answer.On, opts...)
	case AskChoice:
		var picked string
		err = survey.AskOne(prompt, &picked, opts...)
		answer.Chosen = []int{lo.IndexOf(q.Choices, picked)}
	case AskChoices:
		var picked []string
		err = survey.AskOne(prompt, &picked, opts...)
		answer.Chosen = chosenIndices(q.Choices, picked)
	default:
		err = survey.AskOne(prompt, &answer.Text, opts...)
	}
	if err != nil {
		return Answer{}, translateSurveyErr(err)
	}
	return answer, nil
}

func (d *surveyDriver) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, message)
	return err
}

func surveyPrompt(q Question) survey.Prompt {
	switch q.Kind {
	case AskSecret:
		return &survey.Password{Message: q.Message, Help: q.Help}
	case AskMultiline:
		return &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}
	case AskConfirm:
		return &survey.Confirm{Message: q.Message, Help: q.Help, Default: q.DefaultOn}
	case AskChoice:
		prompt := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Choices}
		if picked := preselected(q); len(picked) > 0 {
			prompt.Default = picked[0]
		}
		return prompt
	case AskChoices:
		prompt := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: q.Choices}
		if picked := preselected(q); len(picked) > 0 {
			prompt.Default = picked
		}
		return prompt
	default:
		return &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	}
}

func surveyOptions(q Question) []survey.AskOpt {
	if q.Check == nil {
		return nil
	}
	switch q.Kind {
	case AskLine, AskSecret, AskMultiline:
		return []survey.AskOpt{survey.WithValidator(func(ans interface{}) error {
			text, _ := ans.(string)
			return q.Check(text)
		})}
	default:
		return nil
	}
}

// preselected resolves Chosen to labels, dropping indices out of range.
func preselected(q Question) []string {
	return lo.FilterMap(q.Chosen, func(idx int, _ int) (string, bool) {
		if idx < 0 || idx >= len(q.Choices) {
			return "", false
		}
		return q.Choices[idx], true
	})
}

func chosenIndices(choices, picked []string) []int {
	var out []int
	for idx, choice := range choices {
		if lo.Contains(picked, choice) {
			out = append(out, idx)
		}
	}
	return out
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
