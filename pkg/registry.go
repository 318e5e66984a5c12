package yeyo

import "path/filepath"

// TrackedFile is a file whose version string yeyo rewrites.
type TrackedFile struct {
	// Path is the file path, relative to the working directory or absolute.
	Path string
	// MatchTemplate renders, against the old version, to the text that
	// identifies the line to rewrite.
	MatchTemplate string
}

// Registry is the ordered set of tracked files. Entries keep insertion order.
type Registry struct {
	files []TrackedFile
}

// NewRegistry builds a registry from files, rejecting duplicate paths.
func NewRegistry(files ...TrackedFile) (*Registry, error) {
	r := &Registry{}
	for _, f := range files {
		if err := r.Add(f.Path, f.MatchTemplate); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) index(path string) int {
	if r == nil {
		return -1
	}
	clean := filepath.Clean(path)
	for i, f := range r.files {
		if f.Path == clean {
			return i
		}
	}
	return -1
}

// Add appends path. An empty matchTemplate means DefaultMatchTemplate.
// A nil registry cannot grow; use NewRegistry or NewConfig.
func (r *Registry) Add(path, matchTemplate string) error {
	if r == nil {
		return newError(InvalidStateError, "cannot add %s to a nil registry", path)
	}
	if path == "" {
		return newError(InvalidStateError, "empty file path")
	}
	if r.index(path) >= 0 {
		return newFileError(DuplicateFileError, path, "already tracked", nil)
	}
	if matchTemplate == "" {
		matchTemplate = DefaultMatchTemplate
	}
	r.files = append(r.files, TrackedFile{Path: filepath.Clean(path), MatchTemplate: matchTemplate})
	return nil
}

// Remove deletes path, keeping the order of the remaining entries.
func (r *Registry) Remove(path string) error {
	i := r.index(path)
	if i < 0 {
		return newFileError(NotFoundError, path, "not tracked", nil)
	}
	r.files = append(r.files[:i:i], r.files[i+1:]...)
	return nil
}

// Contains reports whether path is tracked.
func (r *Registry) Contains(path string) bool {
	return r.index(path) >= 0
}

// List returns a copy of the entries in insertion order.
func (r *Registry) List() []TrackedFile {
	if r == nil {
		return nil
	}
	out := make([]TrackedFile, len(r.files))
	copy(out, r.files)
	return out
}

// Paths returns the tracked paths in insertion order.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.files))
	for i, f := range r.files {
		out[i] = f.Path
	}
	return out
}

// Len returns the number of tracked files.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.files)
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	return &Registry{files: r.List()}
}
