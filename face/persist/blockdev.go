package persist

import (
	"watchface/hal"

	"tinygo.org/x/tinyfs"
)

// progBytes is the program granularity reported to LittleFS. NOR flash can
// program any byte range; 256 is one flash page.
const progBytes = 256

// flashDevice presents a hal.Flash as a tinyfs block device.
type flashDevice struct {
	f hal.Flash
}

var _ tinyfs.BlockDevice = flashDevice{}

func (d flashDevice) ReadAt(p []byte, off int64) (int, error) {
	return d.f.ReadAt(p, uint32(off))
}

func (d flashDevice) WriteAt(p []byte, off int64) (int, error) {
	return d.f.WriteAt(p, uint32(off))
}

func (d flashDevice) Size() int64           { return int64(d.f.SizeBytes()) }
func (d flashDevice) WriteBlockSize() int64 { return progBytes }
func (d flashDevice) EraseBlockSize() int64 { return int64(d.f.EraseBlockBytes()) }

// EraseBlocks erases n blocks starting at block start.
func (d flashDevice) EraseBlocks(start, n int64) error {
	block := d.f.EraseBlockBytes()
	return d.f.Erase(uint32(start)*block, uint32(n)*block)
}
