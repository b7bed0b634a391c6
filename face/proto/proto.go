// Package proto defines the app-message payloads exchanged with the phone companion.
//
// A payload is a dictionary: a u8 tuple count followed by tuples. Each tuple
// is laid out little-endian as:
//   - u32: key
//   - u8:  type (TupleCString, TupleUint, TupleInt)
//   - u16: value length
//   - bytes: value (C strings include their NUL terminator)
package proto

import (
	"encoding/binary"
	"errors"
)

// Key identifies a dictionary entry.
type Key uint32

const (
	KeyTemperature Key = 0
	KeyInverse     Key = 1
)

// KeyRequest carries the marker byte of an outbound refresh request.
const KeyRequest Key = 0

// TupleType is the value encoding of a tuple.
type TupleType uint8

const (
	TupleCString TupleType = iota + 1
	TupleUint
	TupleInt
)

// MaxPayloadBytes is the largest dictionary accepted in either direction.
const MaxPayloadBytes = 64

const tupleHeaderBytes = 7

var (
	ErrMalformed = errors.New("proto: malformed dictionary")
	ErrTooLarge  = errors.New("proto: dictionary too large")
)

// ErrCode mirrors the transport failure reasons reported by the radio.
type ErrCode uint8

const (
	ErrUnknown ErrCode = iota
	ErrNotConnected
	ErrBusy
	ErrSendTimeout
	ErrBufferOverflow
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrNotConnected:
		return "not_connected"
	case ErrBusy:
		return "busy"
	case ErrSendTimeout:
		return "send_timeout"
	case ErrBufferOverflow:
		return "buffer_overflow"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Tuple is one decoded dictionary entry. Value aliases the payload.
type Tuple struct {
	Key   Key
	Type  TupleType
	Value []byte
}

// CString returns the value as a string without its terminator.
func (t Tuple) CString() string {
	v := t.Value
	for i, b := range v {
		if b == 0 {
			v = v[:i]
			break
		}
	}
	return string(v)
}

// Int32 returns integer values of width 1, 2 or 4. Other types and widths
// report false.
func (t Tuple) Int32() (int32, bool) {
	if t.Type != TupleInt && t.Type != TupleUint {
		return 0, false
	}
	signed := t.Type == TupleInt
	switch len(t.Value) {
	case 1:
		if signed {
			return int32(int8(t.Value[0])), true
		}
		return int32(t.Value[0]), true
	case 2:
		v := binary.LittleEndian.Uint16(t.Value)
		if signed {
			return int32(int16(v)), true
		}
		return int32(v), true
	case 4:
		return int32(binary.LittleEndian.Uint32(t.Value)), true
	default:
		return 0, false
	}
}

// Find returns the tuple stored under key.
func Find(payload []byte, key Key) (Tuple, bool, error) {
	var found Tuple
	var ok bool
	err := Walk(payload, func(t Tuple) {
		if !ok && t.Key == key {
			found, ok = t, true
		}
	})
	if err != nil {
		return Tuple{}, false, err
	}
	return found, ok, nil
}

// Walk calls fn for every tuple in payload, in order.
func Walk(payload []byte, fn func(Tuple)) error {
	if len(payload) < 1 {
		return ErrMalformed
	}
	if len(payload) > MaxPayloadBytes {
		return ErrTooLarge
	}
	count := int(payload[0])
	p := payload[1:]
	for i := 0; i < count; i++ {
		if len(p) < tupleHeaderBytes {
			return ErrMalformed
		}
		key := Key(binary.LittleEndian.Uint32(p[0:4]))
		typ := TupleType(p[4])
		n := int(binary.LittleEndian.Uint16(p[5:7]))
		p = p[tupleHeaderBytes:]
		if n > len(p) {
			return ErrMalformed
		}
		if typ < TupleCString || typ > TupleInt {
			return ErrMalformed
		}
		fn(Tuple{Key: key, Type: typ, Value: p[:n:n]})
		p = p[n:]
	}
	return nil
}

// DictWriter builds a dictionary in a fixed buffer.
//
// Writes that do not fit are dropped and reported by Err.
type DictWriter struct {
	buf [MaxPayloadBytes]byte
	n   int
	err error
}

func (w *DictWriter) put(key Key, typ TupleType, v []byte) {
	if w.err != nil {
		return
	}
	if w.n == 0 {
		w.n = 1
	}
	if w.buf[0] == 0xFF || w.n+tupleHeaderBytes+len(v) > len(w.buf) {
		w.err = ErrTooLarge
		return
	}
	b := w.buf[w.n:]
	binary.LittleEndian.PutUint32(b[0:4], uint32(key))
	b[4] = byte(typ)
	binary.LittleEndian.PutUint16(b[5:7], uint16(len(v)))
	copy(b[tupleHeaderBytes:], v)
	w.n += tupleHeaderBytes + len(v)
	w.buf[0]++
}

// WriteUint8 appends an unsigned byte.
func (w *DictWriter) WriteUint8(key Key, v uint8) {
	w.put(key, TupleUint, []byte{v})
}

// WriteInt32 appends a signed 32-bit value.
func (w *DictWriter) WriteInt32(key Key, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.put(key, TupleInt, b[:])
}

// WriteCString appends a NUL-terminated string.
func (w *DictWriter) WriteCString(key Key, s string) {
	var b [MaxPayloadBytes]byte
	if len(s)+1 > len(b) {
		w.err = ErrTooLarge
		return
	}
	n := copy(b[:], s)
	w.put(key, TupleCString, b[:n+1])
}

// Err reports the first write that did not fit.
func (w *DictWriter) Err() error { return w.err }

// Bytes returns a copy of the encoded dictionary.
func (w *DictWriter) Bytes() []byte {
	if w.n == 0 {
		return []byte{0}
	}
	out := make([]byte, w.n)
	copy(out, w.buf[:w.n])
	return out
}

// RequestPayload encodes the outbound refresh request: one uint8 marker.
func RequestPayload() []byte {
	var w DictWriter
	w.WriteUint8(KeyRequest, 0)
	return w.Bytes()
}

// TemperaturePayload encodes an inbound reading.
func TemperaturePayload(s string) []byte {
	var w DictWriter
	w.WriteCString(KeyTemperature, s)
	return w.Bytes()
}
