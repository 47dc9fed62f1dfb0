package cache

// ArtifactKeyOpts are the conversion settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey keys a converted artifact by its source document hash and
// conversion options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return artifactKey(docHash, opts)
}
