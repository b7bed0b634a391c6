//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostFlashDefaultPath      = "watchface.flash"
	hostFlashDefaultSizeBytes = 64 * 1024
	hostFlashEraseBlockBytes  = 4096
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// flashBacking is the byte store behind a host flash: a file or memory.
type flashBacking interface {
	io.ReaderAt
	io.WriterAt
}

type hostFlash struct {
	mu     sync.Mutex
	b      flashBacking
	size   uint32
	erased [hostFlashEraseBlockBytes]byte
}

func newHostFlash() *hostFlash {
	path := os.Getenv("FACE_FLASH_PATH")
	if path == "" {
		path = hostFlashDefaultPath
	}

	var ff *FileFlash
	var err error
	if st, serr := os.Stat(path); serr == nil && st.Size() > 0 {
		ff, err = OpenFileFlash(path)
	} else {
		ff, err = CreateFileFlash(path, hostFlashDefaultSizeBytes)
	}
	if err != nil {
		return &hostFlash{}
	}
	return ff.hostFlash
}

// FileFlash is a flash image kept in a file.
type FileFlash struct {
	*hostFlash
	f *os.File
}

func (f *FileFlash) Close() error { return f.f.Close() }

// CreateFileFlash truncates path to an erased image of size bytes.
func CreateFileFlash(path string, size uint32) (*FileFlash, error) {
	if size == 0 || size%hostFlashEraseBlockBytes != 0 {
		return nil, fmt.Errorf("flash: size %d not a multiple of %d", size, hostFlashEraseBlockBytes)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate flash file %q: %w", path, err)
	}
	ff := &FileFlash{hostFlash: newFlash(f, size), f: f}
	if err := ff.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash file %q: %w", path, err)
	}
	return ff, nil
}

// OpenFileFlash opens an existing image. Its size comes from the file.
func OpenFileFlash(path string) (*FileFlash, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash file %q: %w", path, err)
	}
	n := st.Size()
	if n == 0 || n > int64(^uint32(0)) || n%hostFlashEraseBlockBytes != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("flash file %q: bad size %d", path, n)
	}
	return &FileFlash{hostFlash: newFlash(f, uint32(n)), f: f}, nil
}

// NewMemoryFlash returns an erased flash of size bytes held in memory.
// size is rounded down to whole erase blocks.
func NewMemoryFlash(size uint32) Flash {
	size -= size % hostFlashEraseBlockBytes
	mem := &memBacking{buf: make([]byte, size)}
	for i := range mem.buf {
		mem.buf[i] = 0xFF
	}
	return newFlash(mem, size)
}

func newFlash(b flashBacking, size uint32) *hostFlash {
	hf := &hostFlash{b: b, size: size}
	for i := range hf.erased {
		hf.erased[i] = 0xFF
	}
	return hf
}

func (f *hostFlash) SizeBytes() uint32 { return f.size }
func (f *hostFlash) EraseBlockBytes() uint32 {
	return hostFlashEraseBlockBytes
}

func (f *hostFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.b == nil {
		return 0, ErrNotImplemented
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	return f.b.ReadAt(p, int64(off))
}

func (f *hostFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.b == nil {
		return 0, ErrNotImplemented
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}

	buf := make([]byte, len(p))
	if _, err := f.b.ReadAt(buf, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if buf[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return f.b.WriteAt(p, int64(off))
}

func (f *hostFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.b == nil {
		return ErrNotImplemented
	}
	if size == 0 {
		return nil
	}
	if off%hostFlashEraseBlockBytes != 0 || size%hostFlashEraseBlockBytes != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	if off >= f.size || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}

	for size > 0 {
		if _, err := f.b.WriteAt(f.erased[:], int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += hostFlashEraseBlockBytes
		size -= hostFlashEraseBlockBytes
	}
	return nil
}

type memBacking struct {
	buf []byte
}

func (m *memBacking) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memBacking) WriteAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.buf)) {
		return 0, io.ErrShortWrite
	}
	n := copy(m.buf[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
