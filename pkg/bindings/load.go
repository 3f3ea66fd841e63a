package bindings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/gestalt/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a binding file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not ".json" is read as YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads a binding file (YAML or JSON) and returns its bindings in file order.
func Load(path string) ([]domain.Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings file: %w", err)
	}
	bindings, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bindings, nil
}

// Parse decodes and validates a binding document.
func Parse(data []byte, format Format) ([]domain.Binding, error) {
	file, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	var errs []error
	seen := make(map[string]int, len(file.Bindings))
	for i, def := range file.Bindings {
		path := fmt.Sprintf("bindings[%d]", i)
		errs = append(errs, def.validate(path)...)
		if def.ActionID == "" {
			continue
		}
		if first, dup := seen[def.ActionID]; dup {
			errs = append(errs, &ValidationError{
				Key:    path + ".action_id",
				Reason: fmt.Sprintf("duplicates bindings[%d]", first),
				Value:  def.ActionID,
			})
			continue
		}
		seen[def.ActionID] = i
	}
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}

	out := make([]domain.Binding, 0, len(file.Bindings))
	for _, def := range file.Bindings {
		b, err := def.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Decode turns a binding document into its declarative form without validating it.
func Decode(data []byte, format Format) (File, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return File{}, fmt.Errorf("failed to parse bindings json: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return File{}, fmt.Errorf("failed to parse bindings yaml: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unsupported bindings format %q", format)
	}

	var file File
	dec, err := newDecoder(&file)
	if err != nil {
		return File{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return File{}, fmt.Errorf("failed to decode bindings: %w", err)
	}
	return file, nil
}
