// Package export writes finished documents to disk and optionally opens them.
package export

import (
	"context"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/matzehuels/okrdash/pkg/errors"
)

// File is one document to write.
type File struct {
	Path string
	Data []byte
}

// WriteFile writes data to path atomically: the bytes go to a temp file in
// the same directory which is then renamed over path, so readers see either
// the old document or the complete new one.
func WriteFile(path string, data []byte) error {
	return WriteAll([]File{{Path: path, Data: data}})
}

// WriteAll writes every file or none. All files are first staged as temp
// files beside their targets; only when every one is on disk are they
// renamed into place. A failed rename removes the files this call already
// created.
func WriteAll(files []File) error {
	staged := make([]string, 0, len(files))
	discard := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}
	for _, f := range files {
		tmp, err := stage(f.Path, f.Data)
		if err != nil {
			discard()
			return err
		}
		staged = append(staged, tmp)
	}

	var created []string
	for i, f := range files {
		_, statErr := os.Stat(f.Path)
		if err := os.Rename(staged[i], f.Path); err != nil {
			for _, p := range created {
				os.Remove(p)
			}
			staged = staged[i:]
			discard()
			return errors.Wrap(errors.ErrCodeInternal, err, "rename into %s", f.Path)
		}
		if os.IsNotExist(statErr) {
			created = append(created, f.Path)
		}
	}
	return nil
}

// stage writes data to a temp file in path's directory and returns its name.
func stage(path string, data []byte) (string, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create temp file in %s", dir)
	}
	fail := func(err error, what string) (string, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.Wrap(errors.ErrCodeInternal, err, "%s %s", what, path)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err, "write")
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err, "chmod")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return tmp.Name(), nil
}

// Opener shows a written document to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Browser opens files with the platform's default handler.
type Browser struct {
	// GOOS overrides runtime.GOOS; empty means the running platform.
	GOOS string
	// start launches the command; nil means (*exec.Cmd).Start.
	start func(*exec.Cmd) error
}

// Open launches the platform opener for path and returns without waiting.
func (b Browser) Open(ctx context.Context, path string) error {
	cmd, err := b.command(ctx, path)
	if err != nil {
		return err
	}
	start := b.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "open %s", path)
	}
	return nil
}

func (b Browser) command(ctx context.Context, path string) (*exec.Cmd, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	target := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	goos := b.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return exec.CommandContext(ctx, "open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.CommandContext(ctx, "xdg-open", target), nil
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/c", "start", "", abs), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported platform: %s", goos)
}
