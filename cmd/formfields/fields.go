package main

import (
	"log/slog"

	"github.com/goliatone/go-formfields/components/timezones"
	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

// formOptions resolves `format: timezone` fields to selects. Fields without
// an endpoint search the bundled zone list in process.
func formOptions(def definition.Definition, logger *slog.Logger) []form.Option {
	registry := widgets.NewRegistry()
	registry.Register(model.FieldKindSelect, 75, timezones.IsTimezoneField)

	options := []form.Option{form.WithRegistry(registry), form.WithLogger(logger)}
	for _, field := range def.Fields {
		if !timezones.IsTimezoneField(field) || field.Endpoint != nil {
			continue
		}
		options = append(options, form.WithLoader(field.Name, timezones.Loader()))
		logger.Debug("timezone loader attached", "field", field.Name)
	}
	return options
}
