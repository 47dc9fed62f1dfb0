package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Hash returns the hex SHA-256 of a rendered SVG document. Rendering is
// deterministic, so an unchanged report always hashes to the same value.
func Hash(svg []byte) string {
	sum := sha256.Sum256(svg)
	return hex.EncodeToString(sum[:])
}

// artifactKey folds a document hash and the conversion settings into
// "artifact:<sha256>". Format is case-insensitive and a zero scale means the
// converter's native size.
func artifactKey(docHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s", docHash, strings.ToLower(opts.Format), strconv.FormatFloat(opts.Scale, 'g', -1, 64))
	return "artifact:" + hex.EncodeToString(h.Sum(nil))
}
