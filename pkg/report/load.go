package report

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/okrdash/pkg/asset"
	"github.com/matzehuels/okrdash/pkg/errors"
)

// Report is a parsed descriptor bound to the location its relative paths
// resolve against: a directory on disk, or the embedded preset tree.
type Report struct {
	Name       string
	Descriptor Descriptor

	dir  string
	fsys fs.FS
}

// Load reads and validates the descriptor at path. The format follows the
// extension: .toml, .yaml or .yml.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "descriptor %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "read descriptor %s", path)
	}
	d, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return &Report{Name: path, Descriptor: *d, dir: filepath.Dir(path)}, nil
}

// Open resolves ref as a descriptor file when one exists, and as a preset
// name otherwise.
func Open(ref string) (*Report, error) {
	if _, err := os.Stat(ref); err == nil {
		return Load(ref)
	}
	if filepath.Ext(ref) == "" {
		return Preset(ref)
	}
	return nil, errors.New(errors.ErrCodeFileNotFound, "descriptor %s does not exist", ref)
}

// Parse decodes and validates a descriptor. name selects the format by its
// extension and prefixes error messages.
func Parse(name string, data []byte) (*Descriptor, error) {
	var d Descriptor
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "parse %s", name)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDescriptor, "%s: unknown key %q", name, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDescriptor, err, "parse %s", name)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unsupported descriptor format %q (want .toml, .yaml or .yml)", name, ext)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}

// WithLogo returns a copy of r whose logo is read from path on disk.
func (r *Report) WithLogo(path string) *Report {
	out := *r
	out.Descriptor.Logo = path
	out.dir, out.fsys = ".", nil
	return &out
}

// LoadLogo reads the descriptor's logo. It returns nil when none is declared.
func (r *Report) LoadLogo() (*asset.Asset, error) {
	logo := r.Descriptor.Logo
	if logo == "" {
		return nil, nil
	}
	if r.fsys != nil {
		return asset.LoadFS(r.fsys, logo)
	}
	if !filepath.IsAbs(logo) {
		logo = filepath.Join(r.dir, logo)
	}
	return asset.Load(logo)
}
