package wheelhouse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/opencontainers/go-digest"

	"github.com/wheelforge/wheelforge/internal/paths"
)

// One collected artifact.
type Entry struct {
	Name   string        // Wheel filename.
	Size   int64         // Size in bytes.
	Digest digest.Digest // Content digest of the wheel.
}

// Clears and recreates the wheelhouse.
//
// Called exactly once per isolated run, before any variant builds, so the
// final contents never include stale artifacts from a previous run.
func Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear wheelhouse %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("create wheelhouse %s: %w", dir, err)
	}
	return nil
}

// Copies a repaired wheel into the wheelhouse.
//
// The source is copied, not moved; the per-variant workspace holding it is
// destroyed separately. Returns the destination path.
func Collect(dir, src string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("collect %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return "", fmt.Errorf("collect %s: %w", src, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("collect %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("collect %s: %w", src, err)
	}

	return dst, nil
}

// Returns the wheel filenames in the house, sorted.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.whl"))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)

	return names, nil
}

// Returns one entry per wheel with size and content digest, sorted by name.
func Summary(dir string) ([]Entry, error) {
	names, err := List(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)

		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", name, err)
		}

		dgst, err := digest.FromReader(fh)
		if err != nil {
			fh.Close()
			return nil, fmt.Errorf("summarize %s: %w", name, err)
		}

		info, err := fh.Stat()
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", name, err)
		}

		entries = append(entries, Entry{Name: name, Size: info.Size(), Digest: dgst})
	}

	return entries, nil
}
