package fields

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/selection"
)

// Loader fetches option records for an async select. The query is the text
// typed into the widget. Loaders own retries and timeouts.
type Loader func(ctx context.Context, query string) ([]model.Record, error)

// SelectConfig configures a select. Setting Loader switches the field into
// async mode; static Choices are then ignored for listing.
type SelectConfig struct {
	Props
	Choices
	Loader      Loader
	Multiple    bool
	Placeholder string
	// LegacyReconcile merges multi-select changes with the current value
	// (subset means removal, anything else is an addition) instead of
	// trusting the widget's reported selection.
	LegacyReconcile bool
}

// Select adapts a dropdown/combobox widget.
type Select struct {
	binding
	keys     model.Keys
	options  []model.Option
	loader   Loader
	multiple bool
	legacy   bool

	placeholder string
	// listing holds the options returned by the most recent Load.
	listing []model.Option
	// displayed mirrors the external value for async widgets, which cannot
	// resolve labels from a static list.
	displayed []model.Option
}

var _ Field = (*Select)(nil)

// NewSelect mounts a select field.
func NewSelect(cfg SelectConfig) *Select {
	f := &Select{
		keys:        cfg.Keys.Normalize(),
		options:     cfg.Choices.resolve(),
		loader:      cfg.Loader,
		multiple:    cfg.Multiple,
		legacy:      cfg.LegacyReconcile,
		placeholder: cfg.Placeholder,
	}
	f.bind(cfg.Props)
	f.syncDisplayed()
	return f
}

// Kind reports FieldKindSelect.
func (f *Select) Kind() model.FieldKind {
	return model.FieldKindSelect
}

// Async reports whether options come from a loader.
func (f *Select) Async() bool {
	return f.loader != nil
}

// Multiple reports whether the select accepts several values.
func (f *Select) Multiple() bool {
	return f.multiple
}

// Keys returns the label/value strategy used for loaded records.
func (f *Select) Keys() model.Keys {
	return f.keys
}

// Options returns the options currently listed by the widget: the static
// options, or the result of the last Load in async mode.
func (f *Select) Options() []model.Option {
	if f.Async() {
		return append([]model.Option(nil), f.listing...)
	}
	return append([]model.Option(nil), f.options...)
}

// Update replaces the props, re-derives validation and refreshes the
// displayed selection from the new external value.
func (f *Select) Update(props Props) {
	f.bind(props)
	f.syncDisplayed()
}

// Load asks the loader for options matching query. Results replace the
// current listing; nothing is cached between loads.
func (f *Select) Load(ctx context.Context, query string) ([]model.Option, error) {
	if f.loader == nil {
		return nil, ErrNotAsync
	}
	records, err := f.loader(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fields: load options for %q: %w", f.Name(), err)
	}
	f.listing = f.keys.Options(records)
	return f.Options(), nil
}

// Choose reports the selection the widget currently shows. Single selects
// report the first option's value (nil when cleared); multi selects report a
// []any or nil.
func (f *Select) Choose(selected []model.Option) {
	var next any
	if !f.multiple {
		next = selection.Single(selected)
	} else {
		var ids identities
		values := ids.keys(selection.OptionValues(selected))
		if f.legacy {
			current := ids.keys(model.Values(f.props.Input.Value))
			next = listValue(ids.values(selection.Legacy(current, values)))
		} else {
			next = listValue(ids.values(selection.Replace(values)))
		}
	}
	f.remember(selected)
	f.props.Input.Change(next)
}

// ChooseValues resolves values against the known options and chooses them.
func (f *Select) ChooseValues(values ...any) error {
	selected := make([]model.Option, 0, len(values))
	for _, value := range values {
		opt, ok := f.lookup(value)
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnknownOption, value)
		}
		selected = append(selected, opt)
	}
	f.Choose(selected)
	return nil
}

// Clear reports an empty selection.
func (f *Select) Clear() {
	f.Choose(nil)
}

// View snapshots the field for rendering.
func (f *Select) View() View {
	view := f.baseView(model.FieldKindSelect)
	view.Multiple = f.multiple
	view.Async = f.Async()
	view.Placeholder = f.placeholder

	current := model.Values(f.props.Input.Value)
	listed := f.Options()
	for _, opt := range f.displayed {
		if _, ok := findOption(listed, opt.Value); !ok {
			listed = append(listed, opt)
		}
	}
	view.Options = optionViews(f.props.Input.Name, listed, func(opt model.Option) bool {
		return containsValue(current, opt.Value)
	})
	return view
}

func (f *Select) lookup(value any) (model.Option, bool) {
	for _, source := range [][]model.Option{f.options, f.listing, f.displayed} {
		if opt, ok := findOption(source, value); ok {
			return opt, true
		}
	}
	return model.Option{}, false
}

func (f *Select) remember(selected []model.Option) {
	if len(selected) == 0 {
		f.displayed = nil
		return
	}
	f.displayed = append([]model.Option(nil), selected...)
}

func (f *Select) syncDisplayed() {
	current := model.Values(f.props.Input.Value)
	if len(current) == 0 {
		f.displayed = nil
		return
	}
	next := make([]model.Option, 0, len(current))
	for _, value := range current {
		if opt, ok := f.lookup(value); ok {
			next = append(next, opt)
			continue
		}
		next = append(next, model.Option{Label: model.ValueText(value), Value: value})
	}
	f.displayed = next
}
