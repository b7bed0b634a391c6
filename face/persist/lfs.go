//go:build tinygo || cgo

package persist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"watchface/hal"

	"tinygo.org/x/tinyfs/littlefs"
)

const (
	cacheBytes     = progBytes
	lookaheadBytes = 16
	blockCycles    = 500

	filePrefix = "k"
)

// lfsBackend keeps one file per key in the volume root.
type lfsBackend struct {
	fs *littlefs.LFS
}

// mount mounts the LittleFS volume on f, formatting it when no valid volume
// is found.
func mount(f hal.Flash) (backend, error) {
	fs := littlefs.New(flashDevice{f: f})
	fs.Configure(&littlefs.Config{
		CacheSize:     cacheBytes,
		LookaheadSize: lookaheadBytes,
		BlockCycles:   blockCycles,
	})
	if err := fs.Mount(); err != nil {
		if err := fs.Format(); err != nil {
			return nil, fmt.Errorf("persist format: %w", err)
		}
		if err := fs.Mount(); err != nil {
			return nil, fmt.Errorf("persist mount: %w", err)
		}
	}
	return &lfsBackend{fs: fs}, nil
}

func fileName(key Key) string {
	return "/" + filePrefix + strconv.FormatUint(uint64(key), 16)
}

func parseFileName(name string) (Key, bool) {
	if !strings.HasPrefix(name, filePrefix) {
		return 0, false
	}
	v, err := strconv.ParseUint(name[len(filePrefix):], 16, 32)
	if err != nil {
		return 0, false
	}
	return Key(v), true
}

func (b *lfsBackend) load(fn func(Key, []byte) error) error {
	dir, err := b.fs.Open("/")
	if err != nil {
		return err
	}
	infos, err := dir.Readdir(0)
	_ = dir.Close()
	if err != nil {
		return err
	}

	var buf [1 + MaxValueBytes + 1]byte
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		key, ok := parseFileName(info.Name())
		if !ok {
			continue
		}
		n, err := b.read(fileName(key), buf[:])
		if err != nil {
			return fmt.Errorf("read %s: %w", info.Name(), err)
		}
		if err := fn(key, buf[:n]); err != nil {
			return err
		}
	}
	return nil
}

func (b *lfsBackend) read(path string, buf []byte) (int, error) {
	f, err := b.fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := io.ReadFull(f, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return n, err
}

// save replaces the key's file. LittleFS commits the new contents on Close.
func (b *lfsBackend) save(key Key, rec []byte) error {
	f, err := b.fs.OpenFile(fileName(key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
	if err != nil {
		return err
	}
	if _, err := f.Write(rec); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (b *lfsBackend) remove(key Key) error {
	if _, err := b.fs.Stat(fileName(key)); err != nil {
		return nil
	}
	return b.fs.Remove(fileName(key))
}

func (b *lfsBackend) close() error {
	return b.fs.Unmount()
}
