package cache

import "fmt"

// Keyer generates cache keys for each cached stage.
type Keyer interface {
	// LayoutKey returns the key for the layouts of a bracket document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key for one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes computed geometry.
type LayoutKeyOpts struct {
	Section      string  `json:"section,omitempty"`
	RowHeight    float64 `json:"row_height"`
	BoxWidth     float64 `json:"box_width"`
	BoxHeight    float64 `json:"box_height"`
	ColumnGap    float64 `json:"column_gap"`
	FlowGap      float64 `json:"flow_gap"`
	HeaderHeight float64 `json:"header_height"`
	Margin       float64 `json:"margin"`
}

// ArtifactKeyOpts holds every option that changes rendered output.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Interaction bool    `json:"interaction,omitempty"`
	Winners     bool    `json:"winners,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes inputs and options into "<stage>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}
