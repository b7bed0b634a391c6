// Package persist is a small key/value store for watchface settings.
//
// Values live in an in-memory table. When the platform has flash, each key
// is also kept as one file on a LittleFS volume, so a write either lands
// whole or leaves the previous value in place. A file holds one kind byte
// followed by the value bytes.
package persist

import (
	"encoding/binary"
	"errors"
	"fmt"

	"watchface/hal"
)

// Key names a stored value.
type Key uint32

const (
	MaxEntries    = 16
	MaxValueBytes = 64

	// minBlocks is the smallest flash LittleFS is mounted on.
	minBlocks = 4
)

var (
	ErrFull          = errors.New("persist: store full")
	ErrValueTooLarge = errors.New("persist: value too large")
	ErrCorrupt       = errors.New("persist: corrupt record")
)

type kind uint8

const (
	kindBool kind = iota + 1
	kindInt
	kindString
)

type entry struct {
	used bool
	key  Key
	kind kind
	n    uint8
	val  [MaxValueBytes]byte
}

func (e *entry) value() []byte { return e.val[:e.n] }

// backend keeps records on flash.
type backend interface {
	load(fn func(key Key, rec []byte) error) error
	save(key Key, rec []byte) error
	remove(key Key) error
	close() error
}

// Store is not safe for concurrent use.
type Store struct {
	fs      backend
	entries [MaxEntries]entry
	rec     [1 + MaxValueBytes]byte
}

// Open loads the store from f. A nil flash, one too small to hold a volume,
// or one that reports hal.ErrNotImplemented yields a memory-only store. So
// does a build without LittleFS support.
func Open(f hal.Flash) (*Store, error) {
	s := &Store{}
	if f == nil {
		return s, nil
	}
	block := f.EraseBlockBytes()
	if block == 0 || f.SizeBytes()%block != 0 || f.SizeBytes() < minBlocks*block {
		return s, nil
	}
	var probe [1]byte
	if _, err := f.ReadAt(probe[:], 0); errors.Is(err, hal.ErrNotImplemented) {
		return s, nil
	}

	fs, err := mount(f)
	if err != nil {
		return nil, err
	}
	if fs == nil {
		return s, nil
	}
	if err := fs.load(s.restore); err != nil {
		_ = fs.close()
		return nil, fmt.Errorf("persist load: %w", err)
	}
	s.fs = fs
	return s, nil
}

func (s *Store) restore(key Key, rec []byte) error {
	if len(rec) < 1 || len(rec) > 1+MaxValueBytes {
		return fmt.Errorf("key %d: %w", key, ErrCorrupt)
	}
	k := kind(rec[0])
	if k < kindBool || k > kindString {
		return fmt.Errorf("key %d: %w", key, ErrCorrupt)
	}
	return s.set(key, k, rec[1:])
}

// Persistent reports whether writes reach flash.
func (s *Store) Persistent() bool { return s.fs != nil }

// Close unmounts the flash volume. The store stays readable.
func (s *Store) Close() error {
	if s.fs == nil {
		return nil
	}
	err := s.fs.close()
	s.fs = nil
	return err
}

func (s *Store) Exists(key Key) bool {
	return s.find(key) != nil
}

// ReadBool returns false when key is missing or not a bool.
func (s *Store) ReadBool(key Key) bool {
	e := s.find(key)
	if e == nil || e.kind != kindBool || e.n != 1 {
		return false
	}
	return e.val[0] != 0
}

// ReadInt returns 0 when key is missing or not an int.
func (s *Store) ReadInt(key Key) int64 {
	e := s.find(key)
	if e == nil || e.kind != kindInt || e.n != 8 {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(e.val[:8]))
}

// ReadString returns "" when key is missing or not a string.
func (s *Store) ReadString(key Key) string {
	e := s.find(key)
	if e == nil || e.kind != kindString {
		return ""
	}
	return string(e.value())
}

func (s *Store) WriteBool(key Key, v bool) error {
	b := [1]byte{}
	if v {
		b[0] = 1
	}
	return s.write(key, kindBool, b[:])
}

func (s *Store) WriteInt(key Key, v int64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return s.write(key, kindInt, b[:])
}

func (s *Store) WriteString(key Key, v string) error {
	if len(v) > MaxValueBytes {
		return fmt.Errorf("persist write %d: %w", key, ErrValueTooLarge)
	}
	var b [MaxValueBytes]byte
	n := copy(b[:], v)
	return s.write(key, kindString, b[:n])
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key Key) error {
	e := s.find(key)
	if e == nil {
		return nil
	}
	*e = entry{}
	if s.fs == nil {
		return nil
	}
	if err := s.fs.remove(key); err != nil {
		return fmt.Errorf("persist delete %d: %w", key, err)
	}
	return nil
}

func (s *Store) find(key Key) *entry {
	for i := range s.entries {
		if s.entries[i].used && s.entries[i].key == key {
			return &s.entries[i]
		}
	}
	return nil
}

func (s *Store) set(key Key, k kind, v []byte) error {
	e := s.find(key)
	if e == nil {
		for i := range s.entries {
			if !s.entries[i].used {
				e = &s.entries[i]
				break
			}
		}
	}
	if e == nil {
		return ErrFull
	}
	e.used, e.key, e.kind = true, key, k
	e.n = uint8(copy(e.val[:], v))
	return nil
}

// write saves to flash first so the table never runs ahead of it.
func (s *Store) write(key Key, k kind, v []byte) error {
	e := s.find(key)
	if e != nil && e.kind == k && string(e.value()) == string(v) {
		return nil
	}
	if e == nil && s.full() {
		return fmt.Errorf("persist write %d: %w", key, ErrFull)
	}
	if s.fs != nil {
		rec := s.rec[:1+len(v)]
		rec[0] = byte(k)
		copy(rec[1:], v)
		if err := s.fs.save(key, rec); err != nil {
			return fmt.Errorf("persist write %d: %w", key, err)
		}
	}
	return s.set(key, k, v)
}

func (s *Store) full() bool {
	for i := range s.entries {
		if !s.entries[i].used {
			return false
		}
	}
	return true
}
