// Package timezones is an option source for async selects. It searches a
// curated list of IANA zone names and serves the matches as label/value
// records, either over HTTP (for endpoint-backed fields) or in process
// through a fields.Loader.
package timezones
