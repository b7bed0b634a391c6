//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

// MemoryFramebuffer is an RGB565 framebuffer held in host memory.
//
// The simulator window, headless runs, snapshots and tests all draw into one.
type MemoryFramebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	buf      []byte
	presents int
}

// NewMemoryFramebuffer allocates a cleared framebuffer.
func NewMemoryFramebuffer(width, height int) *MemoryFramebuffer {
	return newHostFramebuffer(width, height)
}

func newHostFramebuffer(width, height int) *MemoryFramebuffer {
	stride := width * 2
	return &MemoryFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

type hostFramebuffer = MemoryFramebuffer

func (f *MemoryFramebuffer) Width() int          { return f.width }
func (f *MemoryFramebuffer) Height() int         { return f.height }
func (f *MemoryFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemoryFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemoryFramebuffer) Buffer() []byte      { return f.buf }

func (f *MemoryFramebuffer) Present() error {
	f.mu.Lock()
	f.presents++
	f.mu.Unlock()
	return nil
}

// Presents reports how many frames have been presented.
func (f *MemoryFramebuffer) Presents() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

func (f *MemoryFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// PixelRGB returns the colour at (x, y) expanded to 8 bits per channel.
func (f *MemoryFramebuffer) PixelRGB(x, y int) (r, g, b uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0
	}
	off := y*f.stride + x*2
	return rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
}

// RGBA converts the framebuffer into an opaque RGBA image.
func (f *MemoryFramebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.snapshotRGBA(img.Pix)
	return img
}

func (f *MemoryFramebuffer) snapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	src := f.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}
