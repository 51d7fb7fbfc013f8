// Package iox provides the filesystem abstraction lightdock-go's setup and
// GSO drivers write their deterministic per-swarm artifacts through.
// Grounded on shiblon-entrogo's taskstore/journal package (filesystem.go):
// an FS/File interface pair with a real os-backed implementation and an
// in-memory implementation for tests, so pipeline code never calls the os
// package directly.
package iox

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FS is the filesystem surface the setup and gso drivers depend on.
// Grounded on shiblon-entrogo/taskstore/journal.FS; FindMatching and
// Lock/Unlock are dropped because every artifact name is known up front and
// each swarm worker owns a disjoint set of output paths, so there is no
// glob discovery or advisory locking to do.
type FS interface {
	Create(name string) (File, error)
	Open(name string) (File, error)
	MkdirAll(name string) error
}

// File is the subset of *os.File lightdock-go's writers need.
type File interface {
	io.ReadWriteCloser
	Name() string
}

// OSFS is the real filesystem.
type OSFS struct{}

func (OSFS) Create(name string) (File, error) {
	return os.Create(name)
}

func (OSFS) Open(name string) (File, error) {
	return os.Open(name)
}

func (OSFS) MkdirAll(name string) error {
	return os.MkdirAll(name, 0o755)
}

// RootedOSFS is the real filesystem rooted at Dir: every name passed to
// Create/Open/MkdirAll is resolved relative to it, so a setup or gso run can
// be pointed at an --out directory without every caller joining paths
// itself.
type RootedOSFS struct {
	Dir string
}

func (r RootedOSFS) resolve(name string) string {
	return filepath.Join(r.Dir, name)
}

func (r RootedOSFS) Create(name string) (File, error) {
	return os.Create(r.resolve(name))
}

func (r RootedOSFS) Open(name string) (File, error) {
	return os.Open(r.resolve(name))
}

func (r RootedOSFS) MkdirAll(name string) error {
	return os.MkdirAll(r.resolve(name), 0o755)
}

// memFile is an in-memory File, grounded on journal.memFile.
type memFile struct {
	*bytes.Buffer
	name string
}

func (f *memFile) Close() error { return nil }

func (f *memFile) Name() string { return f.name }

// MemFS is an in-memory FS for tests.
type MemFS struct {
	files map[string]*bytes.Buffer
}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*bytes.Buffer)}
}

func (m *MemFS) Create(name string) (File, error) {
	buf := &bytes.Buffer{}
	m.files[name] = buf
	return &memFile{Buffer: buf, name: name}, nil
}

func (m *MemFS) Open(name string) (File, error) {
	buf, ok := m.files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return &memFile{Buffer: bytes.NewBuffer(buf.Bytes()), name: name}, nil
}

func (m *MemFS) MkdirAll(name string) error {
	return nil
}

// Contents returns the current bytes written to name, for test assertions.
func (m *MemFS) Contents(name string) ([]byte, bool) {
	buf, ok := m.files[name]
	if !ok {
		return nil, false
	}
	return buf.Bytes(), true
}

// Names returns every path written so far, sorted.
func (m *MemFS) Names() []string {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFile creates name on fs, writes contents, and closes it, returning
// the first error encountered (grounded on journal.go's segment writer and
// its create-write-close-without-leaking-descriptors discipline).
func WriteFile(fs FS, name string, contents []byte) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := fs.MkdirAll(dir); err != nil {
			return err
		}
	}
	f, err := fs.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(contents); err != nil {
		return err
	}
	return nil
}
