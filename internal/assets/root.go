// Package assets locates demo resources below an asset root and provides the
// asset loader subsystem that tracks every stream it hands out.
package assets

import "path/filepath"

// Root is an opaque, caller-owned asset root. Constructing one performs no
// filesystem checks; validation happens when a subsystem needs the files.
type Root struct {
	path string
}

// NewRoot wraps an already resolved filesystem location.
func NewRoot(path string) Root { return Root{path: path} }

// Path returns the location the root was built from.
func (r Root) Path() string { return r.path }

// IsZero reports whether the root carries no location at all.
func (r Root) IsZero() bool { return r.path == "" }

// Join resolves elem below the root using OS separators.
func (r Root) Join(elem ...string) string {
	return filepath.Join(append([]string{r.path}, elem...)...)
}

func (r Root) String() string { return r.path }
