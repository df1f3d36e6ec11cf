package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// Write encodes doc in format f and writes it to w. The output can be
// read back with [Read].
func Write(doc *bracket.Document, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode JSON")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode TOML")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode YAML")
		}
		if err := enc.Close(); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "encode YAML")
		}
	default:
		return apperr.New(apperr.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	return nil
}

// WriteFile writes doc to path in the format implied by its extension.
func WriteFile(doc *bracket.Document, path string) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(doc, &buf, f); err != nil {
		return err
	}
	return writeBytes(path, buf.Bytes())
}

func writeBytes(path string, data []byte) error {
	if err := apperr.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
