package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// Format identifies a bracket file encoding.
type Format string

// Supported bracket file formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", apperr.New(apperr.ErrCodeInvalidFormat, "unsupported bracket file %q (want .json, .toml, .yaml or .yml)", filepath.Base(path))
	}
}

// ReadJSON decodes a JSON bracket document from r. Unknown fields are
// rejected. The result is normalized and validated.
func ReadJSON(r io.Reader) (*bracket.Document, error) {
	var doc bracket.Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode JSON")
	}
	return finish(&doc)
}

// ReadTOML decodes a TOML bracket document from r. Undecoded keys are
// rejected. The result is normalized and validated.
func ReadTOML(r io.Reader) (*bracket.Document, error) {
	var doc bracket.Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "decode TOML: unknown key %q", undecoded[0].String())
	}
	return finish(&doc)
}

// ReadYAML decodes a YAML bracket document from r. Unknown fields are
// rejected. The result is normalized and validated.
func ReadYAML(r io.Reader) (*bracket.Document, error) {
	var doc bracket.Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode YAML")
	}
	return finish(&doc)
}

// Read decodes a bracket document of the given format from r.
func Read(r io.Reader, f Format) (*bracket.Document, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
}

// ImportFile reads the bracket document at path, choosing the decoder by
// extension. A missing file fails with FILE_NOT_FOUND.
func ImportFile(path string) (*bracket.Document, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := Read(file, f)
	if err != nil {
		return nil, withFile(err, path)
	}
	return doc, nil
}

// withFile prefixes the message of a coded error with the file name.
func withFile(err error, path string) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return err
	}
	return &apperr.Error{Code: e.Code, Message: filepath.Base(path) + ": " + e.Message, Cause: e.Cause}
}

func open(path string) (*os.File, error) {
	if err := apperr.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}

func finish(doc *bracket.Document) (*bracket.Document, error) {
	bracket.Normalize(doc)
	if err := bracket.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
