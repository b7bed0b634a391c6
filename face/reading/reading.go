// Package reading holds one externally supplied value, such as a temperature,
// and hides it once it is too old to trust.
package reading

import (
	"errors"
	"fmt"
	"time"

	"watchface/face/logger"
	"watchface/face/persist"
	"watchface/face/proto"
)

const (
	// MaxAge is how long, in seconds, a value stays displayable.
	MaxAge = 3600
	// Placeholder is shown when there is no fresh value.
	Placeholder = "..."
	// RefreshMinutes is the request period in wall-clock minutes.
	RefreshMinutes = 15
)

// Persisted keys.
const (
	KeyValue     persist.Key = 2
	KeyTimestamp persist.Key = 3
)

var ErrNoReading = errors.New("reading: no temperature payload")

// Store is the persistence the value is saved to.
type Store interface {
	Exists(key persist.Key) bool
	ReadString(key persist.Key) string
	ReadInt(key persist.Key) int64
	WriteString(key persist.Key, v string) error
	WriteInt(key persist.Key, v int64) error
}

// Reading is the last received value and when it arrived.
type Reading struct {
	store Store
	log   *logger.Logger

	value     string
	timestamp int64
	has       bool
}

// New returns an empty reading saved to store. store may be nil.
func New(store Store, log *logger.Logger) *Reading {
	return &Reading{store: store, log: log}
}

// Receive stores value as fresh at now and persists it.
func (r *Reading) Receive(value string, now int64) {
	r.value, r.timestamp, r.has = value, now, true
	if r.store == nil {
		return
	}
	if err := r.store.WriteString(KeyValue, value); err != nil {
		r.log.Errorf("persist value: %v", err)
	}
	if err := r.store.WriteInt(KeyTimestamp, now); err != nil {
		r.log.Errorf("persist timestamp: %v", err)
	}
}

// ReceivePayload decodes an inbound message and stores its value. Messages
// without a value leave the reading unchanged.
func (r *Reading) ReceivePayload(payload []byte, now int64) error {
	tp, ok, err := proto.Find(payload, proto.KeyTemperature)
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}
	if !ok || tp.Type != proto.TupleCString {
		return ErrNoReading
	}
	r.Receive(tp.CString(), now)
	return nil
}

// IsStale reports whether the value is absent or older than MaxAge.
func (r *Reading) IsStale(now int64) bool {
	return !r.has || now-r.timestamp > MaxAge
}

// DisplayValue returns the value, or Placeholder when it is stale.
func (r *Reading) DisplayValue(now int64) string {
	if r.IsStale(now) {
		return Placeholder
	}
	return r.value
}

// Load restores the persisted value and reports whether it is fresh enough
// to show. A stale record is kept but not displayed.
func (r *Reading) Load(now int64) bool {
	if r.store == nil || !r.store.Exists(KeyValue) || !r.store.Exists(KeyTimestamp) {
		return false
	}
	r.value = r.store.ReadString(KeyValue)
	r.timestamp = r.store.ReadInt(KeyTimestamp)
	r.has = true
	return !r.IsStale(now)
}

// OnTick reports whether a fresh value should be requested at t.
func (r *Reading) OnTick(t time.Time, connected bool) bool {
	return connected && t.Minute()%RefreshMinutes == 0
}

// Value returns the stored value and its timestamp, stale or not.
func (r *Reading) Value() (value string, timestamp int64, ok bool) {
	return r.value, r.timestamp, r.has
}
