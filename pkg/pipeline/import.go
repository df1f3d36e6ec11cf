package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bracketview/pkg/bracket"
	bvio "github.com/matzehuels/bracketview/pkg/io"
	"github.com/matzehuels/bracketview/pkg/observability"
)

// Import reads, normalizes and validates the bracket file at path.
func Import(ctx context.Context, path string) (*bracket.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, path)
	start := time.Now()

	doc, err := bvio.ImportFile(path)

	sections := 0
	if doc != nil {
		sections = len(doc.Sections)
	}
	hooks.OnImportComplete(ctx, path, sections, time.Since(start), err)
	return doc, err
}

// SelectSections returns the sections of doc to lay out: all of them, or
// only the one titled name (case-insensitive) when name is set.
func SelectSections(doc *bracket.Document, name string) ([]bracket.Section, error) {
	if name == "" {
		return doc.Sections, nil
	}
	sec, err := doc.Section(name)
	if err != nil {
		return nil, err
	}
	return []bracket.Section{*sec}, nil
}
