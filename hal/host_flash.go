//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"tinygo.org/x/tinyfs"
)

const (
	hostFlashDefaultPath      = "flash.bin"
	hostFlashDefaultSizeBytes = 1024 * 1024
	hostFlashEraseBlockBytes  = 4096
	hostFlashPageBytes        = 256
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// FileFlash emulates a NOR part in a host file. Erased bytes read as 0xFF and
// programming can only clear bits.
type FileFlash struct {
	mu      sync.Mutex
	f       *os.File
	size    uint32
	scratch [hostFlashEraseBlockBytes]byte
}

var _ tinyfs.BlockDevice = (*FileFlash)(nil)

// OpenFileFlash opens the image at path. A missing or empty image is created
// with size bytes, fully erased.
func OpenFileFlash(path string, size uint32) (*FileFlash, error) {
	return openFileFlash(path, size, os.O_RDWR|os.O_CREATE)
}

// CreateFileFlash creates a fresh erased image at path, replacing any
// existing file.
func CreateFileFlash(path string, size uint32) (*FileFlash, error) {
	return openFileFlash(path, size, os.O_RDWR|os.O_CREATE|os.O_TRUNC)
}

func openFileFlash(path string, size uint32, flag int) (*FileFlash, error) {
	if size == 0 || size%hostFlashEraseBlockBytes != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, hostFlashEraseBlockBytes)
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}

	ff := &FileFlash{f: f, size: size}
	for i := range ff.scratch {
		ff.scratch[i] = 0xFF
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash file %q: %w", path, err)
	}
	if st.Size() > 0 {
		if st.Size() > int64(^uint32(0)) || st.Size()%hostFlashEraseBlockBytes != 0 {
			_ = f.Close()
			return nil, fmt.Errorf("flash file %q: bad size %d", path, st.Size())
		}
		ff.size = uint32(st.Size())
		return ff, nil
	}

	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate flash file %q to %d: %w", path, size, err)
	}
	if err := ff.EraseBlocks(0, int64(size/hostFlashEraseBlockBytes)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash file %q: %w", path, err)
	}
	return ff, nil
}

func (f *FileFlash) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

func (f *FileFlash) Size() int64           { return int64(f.size) }
func (f *FileFlash) WriteBlockSize() int64 { return hostFlashPageBytes }
func (f *FileFlash) EraseBlockSize() int64 { return hostFlashEraseBlockBytes }

func (f *FileFlash) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off < 0 || off >= int64(f.size) {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(int64(f.size) - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, off)
}

func (f *FileFlash) WriteAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off < 0 || off >= int64(f.size) {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(int64(f.size) - off)
	if len(p) > maxN {
		p = p[:maxN]
	}

	buf := make([]byte, len(p))
	if _, err := f.f.ReadAt(buf, off); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if buf[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return f.f.WriteAt(p, off)
}

func (f *FileFlash) EraseBlocks(start, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return ErrNotImplemented
	}
	blocks := int64(f.size / hostFlashEraseBlockBytes)
	if start < 0 || n < 0 || start+n > blocks {
		return fmt.Errorf("flash erase blocks start=%d len=%d: %w", start, n, os.ErrInvalid)
	}
	for off := start * hostFlashEraseBlockBytes; n > 0; n-- {
		if _, err := f.f.WriteAt(f.scratch[:], off); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += hostFlashEraseBlockBytes
	}
	return nil
}
