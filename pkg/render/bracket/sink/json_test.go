package sink

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

func TestRenderJSON(t *testing.T) {
	doc := testDocument(t)

	data, err := RenderJSON(doc, WithJSONStyle("dark"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out layout.Document
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Title != "Spring Cup" {
		t.Errorf("Title = %q, want Spring Cup", out.Title)
	}
	if out.Style != "dark" {
		t.Errorf("Style = %q, want dark", out.Style)
	}
	if len(out.Sections) != 2 {
		t.Fatalf("Sections = %d, want 2", len(out.Sections))
	}
	upper := out.Sections[0]
	if len(upper.Boxes) != 3 {
		t.Errorf("upper boxes = %d, want 3", len(upper.Boxes))
	}
	if got := len(upper.ConnectorsOf(layout.ConnectorLink)); got != 1 {
		t.Errorf("upper links = %d, want 1", got)
	}
	if upper.Boxes[0].Match.Teams[0].Name != "Falcons" {
		t.Errorf("match data lost: %+v", upper.Boxes[0].Match)
	}
	if !out.Sections[1].Flow() || len(out.Sections[1].Connectors) != 0 {
		t.Error("lower section should be flow without connectors")
	}
}

func TestRenderJSONDoesNotModifyInput(t *testing.T) {
	doc := testDocument(t)
	if _, err := RenderJSON(doc, WithJSONStyle("dark")); err != nil {
		t.Fatal(err)
	}
	if doc.Style != "" {
		t.Errorf("input Style = %q, want empty", doc.Style)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(layout.Document{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\n  \"sections\": []\n}" {
		t.Errorf("RenderJSON(empty) = %s", data)
	}
}
