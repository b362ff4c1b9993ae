package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadLogTheme parses a YAML style document with the same shape FromTable
// accepts.
func LoadLogTheme(data []byte) (LogTheme, error) {
	var table map[string]any
	if err := yaml.Unmarshal(data, &table); err != nil {
		return DefaultLogTheme(), fmt.Errorf("parse style: %w", err)
	}
	return FromTable(table)
}

// LoadLogThemeFile reads and parses a YAML style file.
func LoadLogThemeFile(path string) (LogTheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultLogTheme(), err
	}
	return LoadLogTheme(data)
}
