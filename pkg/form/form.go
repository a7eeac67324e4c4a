package form

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/validation"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

// Option customises Build.
type Option func(*config)

type config struct {
	registry   *widgets.Registry
	loaders    map[string]fields.Loader
	validators map[string]validation.Deriver
	httpClient *http.Client
	location   *time.Location
	logger     *slog.Logger
}

// WithRegistry overrides the registry used to infer field kinds.
func WithRegistry(reg *widgets.Registry) Option {
	return func(c *config) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithLoader installs an option loader for the select named name, switching
// it into async mode. It takes precedence over a definition endpoint.
func WithLoader(name string, loader fields.Loader) Option {
	return func(c *config) {
		if loader != nil {
			c.loaders[name] = loader
		}
	}
}

// WithValidator replaces the validation deriver of the field named name.
func WithValidator(name string, deriver validation.Deriver) Option {
	return func(c *config) {
		if deriver != nil {
			c.validators[name] = deriver
		}
	}
}

// WithHTTPClient sets the client used by endpoint loaders.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLocation sets the location date-time fields parse in.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithLogger sets the logger used while building and refreshing fields.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Form is a definition bound to a host.
type Form struct {
	def    definition.Definition
	host   *Host
	fields []fields.Field
	byName map[string]fields.Field
	cfg    config
	cancel func()
}

// Build validates def, resolves field kinds and mounts one adapter per field.
// Rules and defaults of the definition are registered with host.
func Build(def definition.Definition, host *Host, options ...Option) (*Form, error) {
	if host == nil {
		return nil, fmt.Errorf("form: host is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	cfg := config{
		registry:   widgets.NewRegistry(),
		loaders:    make(map[string]fields.Loader),
		validators: make(map[string]validation.Deriver),
		httpClient: http.DefaultClient,
		location:   time.Local,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	f := &Form{
		def:    def,
		host:   host,
		byName: make(map[string]fields.Field, len(def.Fields)),
		cfg:    cfg,
	}
	f.def.Fields = append([]definition.Field(nil), def.Fields...)
	for idx := range def.Fields {
		fieldDef := &f.def.Fields[idx]
		kind, ok := cfg.registry.Resolve(*fieldDef)
		if !ok {
			return nil, fmt.Errorf("%w: %q (field %q)", definition.ErrUnknownKind, fieldDef.Kind, fieldDef.Name)
		}
		fieldDef.Kind = string(kind)

		rules := fieldDef.Rules
		if kind == model.FieldKindDateTime && rules.Layout == "" {
			rules.Layout = dateLayout(*fieldDef)
		}
		host.SetRules(fieldDef.Name, rules)
		if fieldDef.Default != nil {
			if _, exists := host.State().GetValue(fieldDef.Name); !exists {
				if err := host.State().SetValue(fieldDef.Name, fieldDef.Default); err != nil {
					return nil, err
				}
			}
		}

		field := f.mount(kind, *fieldDef)
		f.fields = append(f.fields, field)
		f.byName[fieldDef.Name] = field
		cfg.logger.Debug("form: mounted field", "field", fieldDef.Name, "kind", kind)
	}

	f.cancel = host.Subscribe(func(evt Event) {
		if field, ok := f.byName[evt.Field]; ok {
			field.Update(f.props(evt.Field))
		}
	})
	return f, nil
}

// Definition returns the definition with resolved kinds.
func (f *Form) Definition() definition.Definition {
	return f.def
}

// Host returns the bound host.
func (f *Form) Host() *Host {
	return f.host
}

// Fields returns the adapters in declaration order.
func (f *Form) Fields() []fields.Field {
	return append([]fields.Field(nil), f.fields...)
}

// Field returns the adapter named name.
func (f *Form) Field(name string) (fields.Field, bool) {
	field, ok := f.byName[name]
	return field, ok
}

// Views snapshots every field for rendering.
func (f *Form) Views() []fields.View {
	out := make([]fields.View, 0, len(f.fields))
	for _, field := range f.fields {
		out = append(out, field.View())
	}
	return out
}

// RenderView snapshots the form for a render.Renderer.
func (f *Form) RenderView() render.FormView {
	return render.FormView{
		ID:          f.def.ID,
		Title:       f.def.Title,
		Description: f.def.Description,
		Action:      f.def.Action,
		Method:      f.def.Method,
		SubmitLabel: f.def.SubmitLabel,
		Fields:      f.Views(),
	}
}

// Refresh pushes fresh props from the host into every field.
func (f *Form) Refresh() {
	for _, field := range f.fields {
		field.Update(f.props(field.Name()))
	}
}

// Submit touches every field, refreshes them and reports whether the host
// considers the form valid.
func (f *Form) Submit() bool {
	names := f.def.Names()
	f.host.TouchAll(names...)
	f.Refresh()
	return f.host.Valid(names...)
}

// Close detaches the form from host events.
func (f *Form) Close() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Form) props(name string) fields.Props {
	fieldDef, _ := f.def.Field(name)
	return fields.Props{
		Input:     f.host.Input(name),
		Meta:      f.host.Meta(name),
		Label:     fieldDef.Label,
		HelpText:  fieldDef.HelpText,
		Required:  fieldDef.Rules.Required,
		Disabled:  fieldDef.Disabled,
		Validator: f.cfg.validators[name],
		Attrs:     fieldDef.Attrs,
	}
}

func (f *Form) mount(kind model.FieldKind, def definition.Field) fields.Field {
	props := f.props(def.Name)
	choices := fields.Choices{Records: def.Options, Keys: def.Keys()}

	switch kind {
	case model.FieldKindCheckbox:
		return fields.NewCheckboxGroup(fields.CheckboxGroupConfig{Props: props, Choices: choices})
	case model.FieldKindRadio:
		return fields.NewRadioGroup(fields.RadioGroupConfig{Props: props, Choices: choices})
	case model.FieldKindSelect:
		return fields.NewSelect(fields.SelectConfig{
			Props:           props,
			Choices:         choices,
			Loader:          f.loader(def),
			Multiple:        def.Multiple,
			Placeholder:     def.Placeholder,
			LegacyReconcile: def.LegacyReconcile,
		})
	case model.FieldKindDateTime:
		return fields.NewDateTime(fields.DateTimeConfig{
			Props:       props,
			Layout:      dateLayout(def),
			Location:    f.cfg.location,
			Placeholder: def.Placeholder,
		})
	case model.FieldKindToggle:
		return fields.NewToggle(fields.ToggleConfig{Props: props, OnLabel: def.OnLabel, OffLabel: def.OffLabel})
	default:
		return fields.NewText(fields.TextConfig{Props: props, Type: def.InputType, Placeholder: def.Placeholder})
	}
}

func (f *Form) loader(def definition.Field) fields.Loader {
	if loader, ok := f.cfg.loaders[def.Name]; ok {
		return loader
	}
	if def.Endpoint != nil && def.Endpoint.URL != "" {
		return EndpointLoader(*def.Endpoint, f.cfg.httpClient)
	}
	return nil
}

func dateLayout(def definition.Field) string {
	if def.Layout != "" {
		return def.Layout
	}
	switch def.Format {
	case "date":
		return fields.LayoutDate
	case "time":
		return fields.LayoutTime
	default:
		return fields.LayoutDateTimeLocal
	}
}
