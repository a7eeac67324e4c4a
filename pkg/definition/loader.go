package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML definition and validates it. source is used in
// error messages only.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var def Definition
	if err := decode(data, source, &def); err != nil {
		return Definition{}, err
	}
	def.normalise()
	if def.ID == "" {
		def.ID = idFromSource(source)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("definition: %s: %w", source, err)
	}
	return def, nil
}

// Load reads and parses a definition file from fsys.
func Load(fsys fs.FS, path string) (Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadAll parses every JSON/YAML file found in fsys, keyed by definition id.
func LoadAll(fsys fs.FS) (map[string]Definition, error) {
	out := make(map[string]Definition)
	if fsys == nil {
		return out, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		def, err := Load(fsys, path)
		if err != nil {
			return err
		}
		if _, exists := out[def.ID]; exists {
			return fmt.Errorf("definition: duplicate id %q (file %s)", def.ID, path)
		}
		out[def.ID] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decode(data []byte, source string, def *Definition) error {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		if err := json.Unmarshal(data, def); err != nil {
			return fmt.Errorf("definition: parse %s: %w", source, err)
		}
		return nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, def); err != nil {
			return fmt.Errorf("definition: parse %s: %w", source, err)
		}
		return nil
	}

	if err := json.Unmarshal(data, def); err == nil {
		return nil
	}
	*def = Definition{}
	if err := yaml.Unmarshal(data, def); err == nil {
		return nil
	}
	return fmt.Errorf("definition: parse %s: invalid JSON or YAML", source)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func idFromSource(source string) string {
	base := filepath.Base(strings.TrimSpace(source))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
