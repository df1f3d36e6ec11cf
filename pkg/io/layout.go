package io

import (
	"encoding/json"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

// MarshalLayouts encodes a layout document as indented JSON.
func MarshalLayouts(doc layout.Document) ([]byte, error) {
	if doc.Sections == nil {
		doc.Sections = []layout.Layout{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}

// UnmarshalLayouts decodes a layout document written by [MarshalLayouts]
// or the JSON sink.
func UnmarshalLayouts(data []byte) (layout.Document, error) {
	var doc layout.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return layout.Document{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode layout")
	}
	if len(doc.Sections) == 0 {
		return layout.Document{}, apperr.New(apperr.ErrCodeInvalidInput, "layout has no sections")
	}
	return doc, nil
}

// WriteLayoutFile writes doc to path as JSON.
func WriteLayoutFile(doc layout.Document, path string) error {
	data, err := MarshalLayouts(doc)
	if err != nil {
		return err
	}
	return writeBytes(path, append(data, '\n'))
}

// ReadLayoutFile reads a layout document from path.
func ReadLayoutFile(path string) (layout.Document, error) {
	f, err := open(path)
	if err != nil {
		return layout.Document{}, err
	}
	defer f.Close()

	var doc layout.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return layout.Document{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode layout %s", path)
	}
	if len(doc.Sections) == 0 {
		return layout.Document{}, apperr.New(apperr.ErrCodeInvalidInput, "layout %s has no sections", path)
	}
	return doc, nil
}
