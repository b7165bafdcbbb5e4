package cache

// LayoutKeyOpts holds the options that change a layout.
type LayoutKeyOpts struct {
	VizType  string  `json:"viz_type"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Geometry string  `json:"geometry"` // hash of the geometry options
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"` // hash of the style options
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(matrixHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(matrixHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", matrixHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
