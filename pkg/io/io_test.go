package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

const jsonDoc = `{
  "title": "Spring Cup",
  "sections": [
    {
      "title": "Upper Bracket",
      "rounds": [
        {"name": "Semifinals", "best_of": 3, "matches": [
          {"id": "sf1", "teams": [{"name": "Falcons", "score": 2, "winner": true}, {"name": "Owls", "score": 1}]},
          {"id": "sf2"}
        ]},
        {"name": "Final", "matches": [{"id": "f"}]}
      ]
    }
  ]
}`

const tomlDoc = `
title = "Spring Cup"

[[sections]]
title = "Upper Bracket"

  [[sections.rounds]]
  name = "Semifinals"
  best_of = 3

    [[sections.rounds.matches]]
    id = "sf1"
    teams = [{ name = "Falcons", score = 2, winner = true }, { name = "Owls", score = 1 }]

    [[sections.rounds.matches]]
    id = "sf2"

  [[sections.rounds]]
  name = "Final"

    [[sections.rounds.matches]]
    id = "f"
`

const yamlDoc = `
title: Spring Cup
sections:
  - title: Upper Bracket
    rounds:
      - name: Semifinals
        best_of: 3
        matches:
          - id: sf1
            teams:
              - {name: Falcons, score: 2, winner: true}
              - {name: Owls, score: 1}
          - id: sf2
      - name: Final
        matches:
          - id: f
`

func checkDoc(t *testing.T, doc *bracket.Document) {
	t.Helper()
	if doc.Title != "Spring Cup" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("Sections = %d, want 1", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Mode != bracket.ModeBinary {
		t.Errorf("Mode = %q, want normalized binary", sec.Mode)
	}
	if got := sec.Counts(); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("Counts() = %v, want [2 1]", got)
	}
	if sec.Rounds[0].BestOf != 3 {
		t.Errorf("BestOf = %d, want 3", sec.Rounds[0].BestOf)
	}
	if sec.Rounds[0].ID != "upper-bracket-r1" {
		t.Errorf("round ID = %q, want generated upper-bracket-r1", sec.Rounds[0].ID)
	}
	sf1 := sec.Rounds[0].Matches[0]
	if sf1.Label() != "Falcons 2:1 Owls" {
		t.Errorf("Label() = %q", sf1.Label())
	}
	if w, ok := sf1.Winner(); !ok || w.Name != "Falcons" {
		t.Errorf("Winner() = %v, %v", w, ok)
	}
}

func TestReaders(t *testing.T) {
	tests := []struct {
		name string
		read func(r *strings.Reader) (*bracket.Document, error)
		data string
	}{
		{"json", func(r *strings.Reader) (*bracket.Document, error) { return ReadJSON(r) }, jsonDoc},
		{"toml", func(r *strings.Reader) (*bracket.Document, error) { return ReadTOML(r) }, tomlDoc},
		{"yaml", func(r *strings.Reader) (*bracket.Document, error) { return ReadYAML(r) }, yamlDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.read(strings.NewReader(tt.data))
			if err != nil {
				t.Fatalf("read error = %v", err)
			}
			checkDoc(t, doc)
		})
	}
}

func TestReadUnknownFields(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		data string
	}{
		{"json", FormatJSON, `{"sections": [], "colour": "red"}`},
		{"toml", FormatTOML, "colour = \"red\"\n"},
		{"yaml", FormatYAML, "colour: red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data), tt.f)
			if !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
				t.Errorf("Read() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadShapeMismatch(t *testing.T) {
	data := `{"sections": [{"title": "Broken", "rounds": [
		{"matches": [{}, {}, {}, {}]},
		{"matches": [{}]}
	]}]}`
	_, err := ReadJSON(strings.NewReader(data))
	if !apperr.Is(err, apperr.ErrCodeShapeMismatch) {
		t.Errorf("ReadJSON() error = %v, want SHAPE_MISMATCH", err)
	}
}

func TestReadGeneratedIDsDoNotCollide(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "explicit id matches a generated one",
			doc:  `{"sections": [{"title": "Main", "rounds": [{"matches": [{"id": "main-r1-m2"}, {}]}]}]}`,
			want: []string{"main-r1-m2", "main-r1-m2-2"},
		},
		{
			name: "titles with the same slug",
			doc: `{"sections": [
				{"title": "Upper Bracket", "rounds": [{"matches": [{}]}]},
				{"title": "Upper-Bracket", "rounds": [{"matches": [{}]}]}
			]}`,
			want: []string{"upper-bracket-r1-m1", "upper-bracket-2-r1-m1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadJSON(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			var got []string
			for _, s := range doc.Sections {
				for _, m := range s.Rounds[0].Matches {
					got = append(got, m.ID)
				}
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("match IDs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"cup.json", FormatJSON, false},
		{"cup.TOML", FormatTOML, false},
		{"dir/cup.yaml", FormatYAML, false},
		{"cup.yml", FormatYAML, false},
		{"cup.txt", "", true},
		{"cup", "", true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cup.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	checkDoc(t, doc)
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ImportFile(bad)
	if !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("bad file error = %v, want INVALID_FORMAT", err)
	}
	if !strings.Contains(apperr.UserMessage(err), "bad.json") {
		t.Errorf("error message %q does not name the file", apperr.UserMessage(err))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src, err := ReadJSON(strings.NewReader(jsonDoc))
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(src, &buf, f); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			doc, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read() error = %v\n%s", err, buf.String())
			}
			checkDoc(t, doc)
		})
	}
}

func TestWriteFile(t *testing.T) {
	src, err := ReadJSON(strings.NewReader(jsonDoc))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	path := filepath.Join(dir, "cup.toml")
	if err := WriteFile(src, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	doc, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	checkDoc(t, doc)

	if err := WriteFile(src, filepath.Join(dir, "cup.csv")); !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("WriteFile(.csv) error = %v, want INVALID_FORMAT", err)
	}
}
