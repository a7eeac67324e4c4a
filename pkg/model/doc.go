// Package model defines the contracts shared by every field adapter: the
// host-supplied Input (name, value and change/blur/focus callbacks), the
// per-render Meta (touched/error/warning), and the Option records used by
// choice fields. Option records are addressed through a Keys strategy
// (defaulting to `label`/`value`) that is resolved once per field
// configuration. Records missing the configured keys degrade to an empty label
// and a nil value instead of failing, so hosts can feed loosely shaped data.
package model
