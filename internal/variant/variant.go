package variant

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	ErrNoVariants = errors.New("no runtime variants found")
)

// One target interpreter ABI installed in the build container.
//
// Variants are discovered once per run and immutable afterwards.
type Variant struct {
	Tag  string // ABI tag, e.g. "cp39-cp39".
	Root string // Toolchain root, e.g. "/opt/python/cp39-cp39".
}

// Path to the variant's interpreter.
//
// Build commands always use this explicit path; ambient PATH resolution
// would risk building every variant with whichever interpreter happens to
// be first.
func (v Variant) Python() string {
	return filepath.Join(v.Root, "bin", "python")
}

// Scans the variants root for installed interpreter toolchains.
//
// Each subdirectory is one variant, keyed by its directory name as the ABI
// tag. The result is sorted lexicographically by tag so build order does not
// depend on directory-listing order. An empty result is an error: a build
// container without interpreters cannot produce anything.
func Discover(root string) ([]Variant, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan variants root %s: %w", root, err)
	}

	var variants []Variant
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		variants = append(variants, Variant{
			Tag:  entry.Name(),
			Root: filepath.Join(root, entry.Name()),
		})
	}

	if len(variants) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoVariants, root)
	}

	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Tag < variants[j].Tag
	})

	return variants, nil
}
