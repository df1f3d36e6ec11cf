// Package io reads and writes bracket documents and computed layouts.
//
// # Bracket Files
//
// A bracket document can be stored as JSON, TOML or YAML; the format is
// chosen by file extension (.json, .toml, .yaml or .yml). All three share
// the same field names:
//
//	title = "Spring Cup"
//
//	[[sections]]
//	title = "Upper Bracket"
//	mode  = "binary"
//
//	  [[sections.rounds]]
//	  name    = "Semifinals"
//	  best_of = 3
//
//	    [[sections.rounds.matches]]
//	    id = "sf1"
//	    teams = [{ name = "Falcons", score = 2, winner = true }, { name = "Owls", score = 1 }]
//
// Use [ImportFile] to read a document from a path, or [ReadJSON],
// [ReadTOML] and [ReadYAML] to read from any io.Reader. Imported documents
// are normalized (missing modes and IDs filled in) and validated, so a
// malformed binary section fails here with SHAPE_MISMATCH.
//
// [WriteFile] encodes a document in the format matching its extension.
//
// # Layout Files
//
// [WriteLayoutFile] and [ReadLayoutFile] store a computed
// [layout.Document] as JSON so it can be rendered again later without
// recomputing positions.
//
// [layout.Document]: github.com/matzehuels/bracketview/pkg/render/bracket/layout.Document
package io
