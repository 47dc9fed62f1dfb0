// Package asset loads the binary assets a report embeds, currently its logo.
//
// An asset is read exactly once: the file is opened, read fully and closed
// before rendering starts. The bytes are sniffed for their MIME type and,
// for raster formats, decoded far enough to learn the image size, so a
// truncated or mislabelled file fails here instead of producing a broken
// document. Any failure is ASSET_UNAVAILABLE.
package asset

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// MaxSize bounds the size of an embedded asset.
const MaxSize = 8 << 20

const mimeSVG = "image/svg+xml"

// Asset is an image ready to be inlined.
type Asset struct {
	Name   string
	MIME   string
	Width  int // zero for SVG
	Height int // zero for SVG
	data   []byte
}

// Load reads the asset at path.
func Load(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "open asset %s", path)
	}
	defer f.Close()
	return read(path, f)
}

// LoadFS reads the asset name from fsys. Embedded presets load their logo
// this way.
func LoadFS(fsys fs.FS, name string) (*Asset, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "open asset %s", name)
	}
	defer f.Close()
	return read(name, f)
}

func read(name string, r io.Reader) (*Asset, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "read asset %s", name)
	}
	return FromBytes(name, data)
}

// FromBytes validates data as an image named name.
func FromBytes(name string, data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeAssetUnavailable, "asset %s is empty", name)
	}
	if len(data) > MaxSize {
		return nil, errors.New(errors.ErrCodeAssetUnavailable, "asset %s exceeds %d bytes", name, MaxSize)
	}

	a := &Asset{Name: filepath.Base(name), data: bytes.Clone(data)}

	if isSVG(name, data) {
		a.MIME = mimeSVG
		return a, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "decode asset %s", name)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeAssetUnavailable, "asset %s has no pixels", name)
	}
	a.Width, a.Height = cfg.Width, cfg.Height
	a.MIME = mimeFor(format, data)
	return a, nil
}

// Bytes returns a copy of the raw asset.
func (a *Asset) Bytes() []byte { return bytes.Clone(a.data) }

// Size returns the asset size in bytes.
func (a *Asset) Size() int { return len(a.data) }

// DataURI returns the asset as a base64 data URI.
func (a *Asset) DataURI() string {
	return "data:" + a.MIME + ";base64," + base64.StdEncoding.EncodeToString(a.data)
}

// mimeFor prefers the sniffed content type and falls back to the decoder name
// for formats http.DetectContentType does not know.
func mimeFor(format string, data []byte) string {
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/" + format
}

// isSVG reports whether data is an SVG document: the name ends in .svg and
// the first element is <svg>.
func isSVG(name string, data []byte) bool {
	if !strings.EqualFold(filepath.Ext(name), ".svg") {
		return false
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local == "svg"
		}
	}
}
