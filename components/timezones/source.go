package timezones

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Format marks definition fields that pick a time zone.
const Format = "timezone"

// IsTimezoneField reports whether def asks for a time zone picker.
func IsTimezoneField(def definition.Field) bool {
	return strings.EqualFold(strings.TrimSpace(def.Format), Format)
}

// Loader searches the zone list in process. It never fails for a valid
// embedded list.
func Loader(fns ...OptionFn) fields.Loader {
	opts := NewOptions(fns...)
	return func(ctx context.Context, query string) ([]model.Record, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		zones, err := opts.zones()
		if err != nil {
			return nil, err
		}
		return Records(zones, query, 0, opts), nil
	}
}

// Field returns an async select definition bound to the handler mounted
// under basePath.
func Field(name, label, basePath string, fns ...OptionFn) definition.Field {
	opts := NewOptions(fns...)
	return definition.Field{
		Name:   name,
		Label:  label,
		Kind:   string(model.FieldKindSelect),
		Format: Format,
		Endpoint: &definition.Endpoint{
			URL:         mountPath(basePath, opts.RoutePath),
			Method:      "GET",
			ResultsPath: ResultsPath,
			QueryParam:  opts.SearchParam,
			Params:      map[string]string{opts.LimitParam: strconv.Itoa(opts.DefaultLimit)},
		},
	}
}
