package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec defines how a payload is written to and read from a file.
type Codec interface {
	// Encode converts v to bytes.
	Encode(v any) ([]byte, error)
	// Decode reads data into v, which must be a pointer.
	Decode(data []byte, v any) error
	// Format names the encoding (e.g. "json").
	Format() string
}

// CodecFor selects the codec matching the extension of path.
func CodecFor(path string, strict bool) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(strict), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(strict), nil
	default:
		return nil, fmt.Errorf("unsupported store format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// --- JSON Codec ---

// JSONCodec reads and writes indented JSON.
type JSONCodec struct {
	// Strict rejects documents carrying fields the payload type does not declare.
	Strict bool
}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec(strict bool) *JSONCodec {
	return &JSONCodec{Strict: strict}
}

func (c *JSONCodec) Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if decoder.More() {
		return errors.New("invalid json: trailing data after document")
	}
	return nil
}

func (c *JSONCodec) Format() string { return "json" }

// --- YAML Codec ---

// YAMLCodec reads and writes YAML documents.
type YAMLCodec struct {
	// Strict rejects documents carrying fields the payload type does not declare.
	Strict bool
}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec(strict bool) *YAMLCodec {
	return &YAMLCodec{Strict: strict}
}

func (c *YAMLCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAMLCodec) Decode(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(c.Strict)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("invalid yaml: empty document")
		}
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}

func (c *YAMLCodec) Format() string { return "yaml" }
