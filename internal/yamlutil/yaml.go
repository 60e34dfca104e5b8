// Package yamlutil wraps YAML parsing to isolate the external dependency.
// JSON documents are parsed by the same functions, JSON being YAML.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Entry is one key/value pair of a mapping, in document order.
type Entry struct {
	Key   string
	Value any
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalOrdered decodes a top-level mapping and keeps its key order,
// which plain map decoding loses.
func UnmarshalOrdered(data []byte) ([]Entry, error) {
	var ms yaml.MapSlice
	if err := validateInput(data, &ms); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}

	entries := make([]Entry, 0, len(ms))
	for _, item := range ms {
		entries = append(entries, Entry{Key: fmt.Sprint(item.Key), Value: item.Value})
	}
	return entries, nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// MarshalJSON encodes v as JSON using the same field tags as Marshal.
func MarshalJSON(v any) ([]byte, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.JSON())
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
