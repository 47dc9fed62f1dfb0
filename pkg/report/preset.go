package report

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/okrdash/pkg/errors"
)

//go:embed presets
var presetFiles embed.FS

// presetExts lists the descriptor extensions recognised in the preset tree.
var presetExts = []string{".toml", ".yaml", ".yml"}

// PresetInfo summarises one embedded preset.
type PresetInfo struct {
	Name        string
	Title       string
	Description string
}

// Presets returns the embedded preset names, sorted.
func Presets() []string {
	entries, err := fs.ReadDir(presetFiles, "presets")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || !slices.Contains(presetExts, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)
	return names
}

// Preset loads the embedded preset called name. Its logo resolves inside
// the preset tree.
func Preset(name string) (*Report, error) {
	sub, err := fs.Sub(presetFiles, "presets")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open preset tree")
	}
	for _, ext := range presetExts {
		data, err := fs.ReadFile(sub, name+ext)
		if err != nil {
			continue
		}
		d, err := Parse(name+ext, data)
		if err != nil {
			return nil, err
		}
		return &Report{Name: name, Descriptor: *d, fsys: sub}, nil
	}
	return nil, errors.New(errors.ErrCodePresetNotFound, "no preset named %q (available: %s)", name, strings.Join(Presets(), ", "))
}

// ListPresets loads every preset and returns its summary.
func ListPresets() ([]PresetInfo, error) {
	names := Presets()
	out := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		r, err := Preset(name)
		if err != nil {
			return nil, err
		}
		out = append(out, PresetInfo{Name: name, Title: r.Descriptor.Title, Description: r.Descriptor.Description})
	}
	return out, nil
}
