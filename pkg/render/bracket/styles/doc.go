// Package styles provides visual styles for bracket SVG rendering.
//
// A [Style] draws the individual pieces of a bracket: section titles,
// round headers, match boxes, team text and connector segments. The sink
// package decides what is drawn and in which order; styles decide how it
// looks.
//
// Two styles are included:
//
//   - [Simple]: white boxes with dark outlines on a transparent background
//   - [Dark]: light text on slate boxes over a dark backdrop
//
// Use [Lookup] to resolve a style by name (as given on the command line).
package styles
