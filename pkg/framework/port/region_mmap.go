//go:build unix

package port

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FileRegion is a Region backed by memory mapped files, for example under
// /dev/shm, that an out-of-process plugin maps by name.
//
// Every resize maps a new file named after the base path and a generation
// number. Earlier mappings are kept until Close because other goroutines
// may still be reading buffers carved from them.
type FileRegion struct {
	base string
	gen  int
	cur  string

	retired []mapping
}

type mapping struct {
	path string
	file *os.File
	data []byte
}

// NewFileRegion creates a region whose files start with base.
func NewFileRegion(base string) *FileRegion {
	return &FileRegion{base: base}
}

// Resize implements Region
func (r *FileRegion) Resize(size int) ([]byte, error) {
	r.gen++
	path := fmt.Sprintf("%s.%d", r.base, r.gen)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open shared buffer: %w", err)
	}
	m := mapping{path: path, file: f}
	if size > 0 {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("size shared buffer: %w", err)
		}
		m.data, err = unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("map shared buffer: %w", err)
		}
	}
	r.retired = append(r.retired, m)
	r.cur = path
	return m.data, nil
}

// Name implements Region
func (r *FileRegion) Name() string { return r.cur }

// Close unmaps and removes every file the region created.
func (r *FileRegion) Close() error {
	var errs []error
	for _, m := range r.retired {
		if m.data != nil {
			if err := unix.Munmap(m.data); err != nil {
				errs = append(errs, fmt.Errorf("unmap %s: %w", m.path, err))
			}
		}
		if err := m.file.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	r.retired = nil
	r.cur = ""
	return errors.Join(errs...)
}
