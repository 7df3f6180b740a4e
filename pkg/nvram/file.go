package nvram

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// File keeps the region in a fixed-size file, for boards without an EEPROM
// part and for bench runs.
type File struct {
	path string
	size int
}

// OpenFile prepares a file-backed region of size bytes. A missing file is
// created erased (all 0xFF); a short one is padded the same way.
func OpenFile(path string, size int) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat blob file: %w", err)
	}

	if pad := size - int(info.Size()); pad > 0 {
		if _, err := f.WriteAt(bytes.Repeat([]byte{0xFF}, pad), info.Size()); err != nil {
			return nil, fmt.Errorf("failed to extend blob file: %w", err)
		}
	}

	return &File{path: path, size: size}, nil
}

func (f *File) ReadBlob(offset, n int) ([]byte, error) {
	if err := checkRange(offset, n, f.size); err != nil {
		return nil, err
	}

	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob file: %w", err)
	}
	defer fh.Close()

	buf := make([]byte, n)
	if _, err := fh.ReadAt(buf, int64(offset)); err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return buf, nil
}

func (f *File) WriteBlob(offset int, data []byte) error {
	if err := checkRange(offset, len(data), f.size); err != nil {
		return err
	}

	fh, err := os.OpenFile(f.path, os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open blob file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.WriteAt(data, int64(offset)); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := fh.Sync(); err != nil {
		return fmt.Errorf("failed to sync blob: %w", err)
	}
	return nil
}
