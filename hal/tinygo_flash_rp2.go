//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2StoreBytes is the size of the settings region at the start of the
// flash data area.
const rp2StoreBytes = 64 * 1024

type rp2Flash struct {
	size  uint32
	block uint32
}

func newRP2Flash() Flash {
	bs := machine.Flash.EraseBlockSize()
	sz := machine.Flash.Size()
	if bs <= 0 || sz <= 0 {
		return stubFlashRP2{}
	}
	size := uint32(rp2StoreBytes)
	if sz < int64(size) {
		size = uint32(sz)
	}
	size -= size % uint32(bs)
	return rp2Flash{size: size, block: uint32(bs)}
}

func (f rp2Flash) SizeBytes() uint32       { return f.size }
func (f rp2Flash) EraseBlockBytes() uint32 { return f.block }

func (f rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: out of range", off)
	}
	if limit := f.size - off; uint32(len(p)) > limit {
		p = p[:limit]
	}
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: out of range", off)
	}
	if limit := f.size - off; uint32(len(p)) > limit {
		p = p[:limit]
	}
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if off%f.block != 0 || size%f.block != 0 || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, ErrNotImplemented)
	}
	return machine.Flash.EraseBlocks(int64(off/f.block), int64(size/f.block))
}

type stubFlashRP2 struct{}

func (stubFlashRP2) SizeBytes() uint32                   { return 0 }
func (stubFlashRP2) EraseBlockBytes() uint32             { return 0 }
func (stubFlashRP2) ReadAt([]byte, uint32) (int, error)  { return 0, ErrNotImplemented }
func (stubFlashRP2) WriteAt([]byte, uint32) (int, error) { return 0, ErrNotImplemented }
func (stubFlashRP2) Erase(uint32, uint32) error          { return ErrNotImplemented }
