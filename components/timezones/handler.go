package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-formfields/pkg/model"
)

// HTTPError lets guard errors choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a ready-made HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// ResultsPath is where the handler puts the records in its JSON response.
const ResultsPath = "data"

type response struct {
	Data []model.Record `json:"data"`
}

// Handler serves GET and HEAD searches: `?q=<query>&limit=<n>` responds with
// `{"data": [{"label": ..., "value": ...}]}`.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from an Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = opts.normalised()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				code := http.StatusForbidden
				var httpErr HTTPError
				if errors.As(err, &httpErr) {
					code = httpErr.StatusCode()
				}
				http.Error(w, http.StatusText(code), code)
				return
			}
		}

		zones, err := opts.zones()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get(opts.LimitParam))
		records := Records(zones, query.Get(opts.SearchParam), limit, opts)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(response{Data: records})
	})
}
