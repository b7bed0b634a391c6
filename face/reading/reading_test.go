package reading

import (
	"errors"
	"testing"
	"time"

	"watchface/face/persist"
	"watchface/face/proto"
)

type memStore struct {
	strs map[persist.Key]string
	ints map[persist.Key]int64
}

func newMemStore() *memStore {
	return &memStore{strs: map[persist.Key]string{}, ints: map[persist.Key]int64{}}
}

func (m *memStore) Exists(key persist.Key) bool {
	_, s := m.strs[key]
	_, i := m.ints[key]
	return s || i
}

func (m *memStore) ReadString(key persist.Key) string { return m.strs[key] }
func (m *memStore) ReadInt(key persist.Key) int64     { return m.ints[key] }

func (m *memStore) WriteString(key persist.Key, v string) error {
	m.strs[key] = v
	return nil
}

func (m *memStore) WriteInt(key persist.Key, v int64) error {
	m.ints[key] = v
	return nil
}

func TestStaleness(t *testing.T) {
	r := New(newMemStore(), nil)
	r.Receive("+21", 1000)

	if got := r.DisplayValue(1000 + 3599); got != "+21" {
		t.Fatalf("DisplayValue(+3599) = %q; want %q", got, "+21")
	}
	if got := r.DisplayValue(1000 + 3600); got != "+21" {
		t.Fatalf("DisplayValue(+3600) = %q; want %q", got, "+21")
	}
	if got := r.DisplayValue(1000 + 3601); got != Placeholder {
		t.Fatalf("DisplayValue(+3601) = %q; want placeholder", got)
	}
}

func TestEmptyShowsPlaceholder(t *testing.T) {
	r := New(nil, nil)
	if !r.IsStale(0) || r.DisplayValue(0) != Placeholder {
		t.Fatalf("empty reading displays %q", r.DisplayValue(0))
	}
}

func TestReceivePersists(t *testing.T) {
	st := newMemStore()
	New(st, nil).Receive("-3C", 5000)

	if st.strs[KeyValue] != "-3C" || st.ints[KeyTimestamp] != 5000 {
		t.Fatalf("persisted = %q,%d", st.strs[KeyValue], st.ints[KeyTimestamp])
	}

	fresh := New(st, nil)
	if !fresh.Load(5000 + 60) {
		t.Fatalf("Load(fresh) = false; want true")
	}
	if got := fresh.DisplayValue(5060); got != "-3C" {
		t.Fatalf("DisplayValue() = %q; want %q", got, "-3C")
	}
}

func TestLoadStaleKeepsRecord(t *testing.T) {
	st := newMemStore()
	New(st, nil).Receive("+5C", 100)

	r := New(st, nil)
	if r.Load(100 + MaxAge + 1) {
		t.Fatalf("Load(stale) = true; want false")
	}
	if got := r.DisplayValue(100 + MaxAge + 1); got != Placeholder {
		t.Fatalf("DisplayValue() = %q; want placeholder", got)
	}
	if v, ts, ok := r.Value(); !ok || v != "+5C" || ts != 100 {
		t.Fatalf("Value() = %q,%d,%v", v, ts, ok)
	}
	if st.strs[KeyValue] != "+5C" {
		t.Fatalf("stored record was dropped")
	}
}

func TestLoadMissing(t *testing.T) {
	if New(newMemStore(), nil).Load(0) {
		t.Fatalf("Load(missing) = true; want false")
	}
}

func TestReceivePayload(t *testing.T) {
	r := New(nil, nil)

	if err := r.ReceivePayload(proto.TemperaturePayload("+21C"), 10); err != nil {
		t.Fatalf("ReceivePayload() err = %v", err)
	}
	if got := r.DisplayValue(10); got != "+21C" {
		t.Fatalf("DisplayValue() = %q; want %q", got, "+21C")
	}

	var w proto.DictWriter
	w.WriteUint8(proto.KeyInverse, 1)
	if err := r.ReceivePayload(w.Bytes(), 20); !errors.Is(err, ErrNoReading) {
		t.Fatalf("ReceivePayload(no value) err = %v; want ErrNoReading", err)
	}
	if err := r.ReceivePayload([]byte{3, 0}, 20); !errors.Is(err, proto.ErrMalformed) {
		t.Fatalf("ReceivePayload(malformed) err = %v; want ErrMalformed", err)
	}
	if _, ts, _ := r.Value(); ts != 10 {
		t.Fatalf("timestamp = %d; want 10 (unchanged)", ts)
	}
}

func TestOnTick(t *testing.T) {
	r := New(nil, nil)
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	tcs := []struct {
		minute    int
		connected bool
		want      bool
	}{
		{minute: 0, connected: true, want: true},
		{minute: 15, connected: true, want: true},
		{minute: 45, connected: true, want: true},
		{minute: 14, connected: true, want: false},
		{minute: 30, connected: false, want: false},
	}
	for _, tc := range tcs {
		tm := base.Add(time.Duration(tc.minute) * time.Minute)
		if got := r.OnTick(tm, tc.connected); got != tc.want {
			t.Fatalf("OnTick(min %d, %v) = %v; want %v", tc.minute, tc.connected, got, tc.want)
		}
	}
}
