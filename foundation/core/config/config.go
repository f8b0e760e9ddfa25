// File: config.go
// Title: Configuration Document Loading
// Description: Decodes TOML and YAML documents into Go structs. Used for the
//              application configuration and for grammar documents. The
//              format is taken from the file extension unless given.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-06-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-06-14 v0.2.0: Struct decoding and encoding instead of a key/value tree

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwstringx "github.com/msto63/teacup/foundation/utils/stringx"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseFormat parses "toml", "yaml", "yml" or "auto"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "", "auto":
		return FormatAuto, nil
	default:
		return FormatAuto, mdwerror.New(fmt.Sprintf("unsupported config format: %s", s)).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.ParseFormat")
	}
}

// DetectFormat returns the format for a file path based on its extension.
// Unknown extensions are treated as TOML.
func DetectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadFile reads the file at filePath and decodes it into target
func LoadFile(filePath string, format Format, target interface{}) error {
	if mdwstringx.IsBlank(filePath) {
		return mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.LoadFile")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return mdwerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadFile").
			WithDetail("filePath", filePath)
	}

	if format == FormatAuto {
		format = DetectFormat(filePath)
	}
	if err := Decode(content, format, target); err != nil {
		if e, ok := mdwerror.As(err); ok {
			e.WithDetail("filePath", filePath)
		}
		return err
	}
	return nil
}

// Decode decodes content in the given format into target. FormatAuto tries
// TOML first and falls back to YAML.
func Decode(content []byte, format Format, target interface{}) error {
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(content), target)
	case FormatYAML:
		err = yaml.Unmarshal(content, target)
	case FormatAuto:
		if _, tomlErr := toml.Decode(string(content), target); tomlErr != nil {
			err = yaml.Unmarshal(content, target)
		}
	default:
		err = fmt.Errorf("unsupported format %d", format)
	}

	if err != nil {
		return mdwerror.Wrap(err, fmt.Sprintf("failed to parse %s content", format)).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Decode").
			WithDetail("format", format.String())
	}
	return nil
}

// Encode serializes v as TOML or YAML
func Encode(v interface{}, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(v)
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	case FormatTOML, FormatAuto:
		err = toml.NewEncoder(&buf).Encode(v)
	default:
		err = fmt.Errorf("unsupported format %d", format)
	}

	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode configuration").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Encode").
			WithDetail("format", format.String())
	}
	return buf.Bytes(), nil
}
