package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/model"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const defaultListPath = "data/iana_timezones.txt"

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded zone list, sorted.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultZones, defaultErr = LoadZones(f)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string(nil), defaultZones...), nil
}

// LoadZones reads one zone per line. Blank lines, comments and duplicates
// are skipped.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}
	scanner := bufio.NewScanner(r)
	seen := make(map[string]struct{})
	var zones []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read zones: %w", err)
	}
	sort.Strings(zones)
	return zones, nil
}

// Search returns up to limit zones containing query, case-insensitively.
// Prefix matches rank first, then names sort alphabetically. Path segments
// count as prefixes, so "berl" ranks "Europe/Berlin" with the prefixes.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		return append([]string(nil), zones[:min(limit, len(zones))]...)
	}

	type match struct {
		name   string
		prefix bool
	}
	var matches []match
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if !strings.Contains(lower, query) {
			continue
		}
		matches = append(matches, match{name: zone, prefix: segmentPrefix(lower, query)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.name)
	}
	return out
}

// Records wraps Search results as label/value records.
func Records(zones []string, query string, limit int, opts Options) []model.Record {
	results := Search(zones, query, limit, opts)
	out := make([]model.Record, 0, len(results))
	for _, zone := range results {
		out = append(out, model.Record{
			model.DefaultLabelKey: strings.ReplaceAll(zone, "_", " "),
			model.DefaultValueKey: zone,
		})
	}
	return out
}

func segmentPrefix(zone, query string) bool {
	if strings.HasPrefix(zone, query) {
		return true
	}
	for _, segment := range strings.Split(zone, "/")[1:] {
		if strings.HasPrefix(segment, query) {
			return true
		}
	}
	return false
}
