package form

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// EndpointLoader returns a loader fetching option records from endpoint. The
// typed query is sent as endpoint.QueryParam. Every call performs a request.
func EndpointLoader(endpoint definition.Endpoint, client *http.Client) fields.Loader {
	if client == nil {
		client = http.DefaultClient
	}
	method := strings.ToUpper(strings.TrimSpace(endpoint.Method))
	if method == "" {
		method = http.MethodGet
	}
	queryParam := strings.TrimSpace(endpoint.QueryParam)
	if queryParam == "" {
		queryParam = "q"
	}

	return func(ctx context.Context, query string) ([]model.Record, error) {
		reqURL, err := url.Parse(endpoint.URL)
		if err != nil {
			return nil, fmt.Errorf("form: parse endpoint url: %w", err)
		}
		q := reqURL.Query()
		for k, v := range endpoint.Params {
			q.Set(k, v)
		}
		if query != "" {
			q.Set(queryParam, query)
		}
		reqURL.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("form: endpoint request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range endpoint.Headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("form: endpoint request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("form: endpoint %s: unexpected status %d", endpoint.URL, resp.StatusCode)
		}

		var payload any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("form: decode endpoint response: %w", err)
		}

		items := extractResults(payload, endpoint.ResultsPath)
		records := make([]model.Record, 0, len(items))
		for _, item := range items {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, model.Record(obj))
			}
		}
		return records, nil
	}
}

func extractResults(payload any, path string) []any {
	if payload == nil {
		return nil
	}
	cur := payload
	if path != "" {
		for _, segment := range strings.Split(path, ".") {
			node, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = node[segment]
		}
	}
	items, _ := cur.([]any)
	return items
}
