package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/bracketview/pkg/cache"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	doc := testDocument(t)
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.Sections != 3 {
		t.Errorf("Stats.Sections = %d, want 3", first.Stats.Sections)
	}
	if first.Stats.Matches != doc.MatchCount() {
		t.Errorf("Stats.Matches = %d, want %d", first.Stats.Matches, doc.MatchCount())
	}
	if first.DocHash == "" {
		t.Error("DocHash is empty")
	}

	second, err := r.Execute(context.Background(), doc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestRunnerRefresh(t *testing.T) {
	r := newTestRunner(t)
	doc := testDocument(t)

	if _, err := r.Execute(context.Background(), doc, Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(context.Background(), doc, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", res.CacheInfo)
	}
}

func TestRunnerCacheKeysDifferByOptions(t *testing.T) {
	r := newTestRunner(t)
	doc := testDocument(t)

	if _, err := r.Execute(context.Background(), doc, Options{Style: "simple"}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(context.Background(), doc, Options{Style: "dark"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Error("style change should reuse the cached layout")
	}
	if res.CacheInfo.RenderHit {
		t.Error("style change should not reuse the cached artifact")
	}

	res, err = r.Execute(context.Background(), doc, Options{RowHeight: 90})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("row height change should not reuse the cached layout")
	}
}

func TestDocumentHash(t *testing.T) {
	a := testDocument(t)
	b := testDocument(t)
	if DocumentHash(a) != DocumentHash(b) {
		t.Error("equal documents hash differently")
	}
	b.Sections[0].Rounds[0].Matches[0].Teams[0].Winner = true
	if DocumentHash(a) == DocumentHash(b) {
		t.Error("different documents hash equally")
	}
}

func TestRunnerNilDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) = %+v", r)
	}
	res, err := r.Execute(context.Background(), testDocument(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("null cache reported a hit")
	}
}
