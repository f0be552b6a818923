package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format of declaration files.
type Format int

const (
	// FormatJSON is JSON, decoded with github.com/go-json-experiment/json.
	FormatJSON Format = iota
	// FormatYAML is YAML, decoded with gopkg.in/yaml.v3.
	FormatYAML
)

// FormatOf returns the format implied by the file extension of path.
func FormatOf(path string) Format {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Unmarshal decodes data in the given format into v. Unknown fields are
// rejected in both formats.
func Unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
		return nil
	case FormatJSON:
		if err := json.Unmarshal(data, v, json.RejectUnknownMembers(true)); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %d", format)
}

// ReadFile reads and decodes the file at path into v, choosing the format
// from the file extension.
func ReadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Unmarshal(data, FormatOf(path), v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
