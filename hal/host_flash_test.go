//go:build !tinygo

package hal

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemoryFlashRequiresErase(t *testing.T) {
	f := NewMemoryFlash(2*hostFlashEraseBlockBytes + 100)
	if got := f.SizeBytes(); got != 2*hostFlashEraseBlockBytes {
		t.Fatalf("SizeBytes() = %d; want %d", got, 2*hostFlashEraseBlockBytes)
	}

	if _, err := f.WriteAt([]byte{0x0F}, 10); err != nil {
		t.Fatalf("WriteAt(erased) err = %v", err)
	}
	if _, err := f.WriteAt([]byte{0xF0}, 10); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("WriteAt(programmed) err = %v; want ErrFlashWriteRequiresErase", err)
	}
	if err := f.Erase(0, hostFlashEraseBlockBytes); err != nil {
		t.Fatalf("Erase() err = %v", err)
	}

	b := make([]byte, 1)
	if _, err := f.ReadAt(b, 10); err != nil || b[0] != 0xFF {
		t.Fatalf("ReadAt() = %#x,%v; want 0xff", b[0], err)
	}
}

func TestMemoryFlashEraseAlignment(t *testing.T) {
	f := NewMemoryFlash(hostFlashEraseBlockBytes)
	if err := f.Erase(1, hostFlashEraseBlockBytes); err == nil {
		t.Fatalf("Erase(unaligned) err = nil; want error")
	}
}

func TestFileFlashReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.flash")
	if _, err := CreateFileFlash(path, 1000); err == nil {
		t.Fatalf("CreateFileFlash(1000) err = nil; want error")
	}

	ff, err := CreateFileFlash(path, 2*hostFlashEraseBlockBytes)
	if err != nil {
		t.Fatalf("CreateFileFlash() err = %v", err)
	}
	if _, err := ff.WriteAt([]byte{0x42}, 7); err != nil {
		t.Fatalf("WriteAt() err = %v", err)
	}
	if err := ff.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}

	ff, err = OpenFileFlash(path)
	if err != nil {
		t.Fatalf("OpenFileFlash() err = %v", err)
	}
	defer ff.Close()
	if got := ff.SizeBytes(); got != 2*hostFlashEraseBlockBytes {
		t.Fatalf("SizeBytes() = %d; want %d", got, 2*hostFlashEraseBlockBytes)
	}
	b := make([]byte, 1)
	if _, err := ff.ReadAt(b, 7); err != nil || b[0] != 0x42 {
		t.Fatalf("ReadAt() = %#x,%v; want 0x42", b[0], err)
	}
}
