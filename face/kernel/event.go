package kernel

import "time"

// EventKind selects the handler an event is dispatched to.
type EventKind uint8

const (
	EventTick EventKind = iota + 1
	EventBounds
	EventBattery
	EventBluetooth
	EventFocus
	EventInbox
	EventInboxDropped
	EventOutboxFailed
	EventOutboxSent
	EventTap
	EventTimer

	numEventKinds
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventBounds:
		return "bounds"
	case EventBattery:
		return "battery"
	case EventBluetooth:
		return "bluetooth"
	case EventFocus:
		return "focus"
	case EventInbox:
		return "inbox"
	case EventInboxDropped:
		return "inbox_dropped"
	case EventOutboxFailed:
		return "outbox_failed"
	case EventOutboxSent:
		return "outbox_sent"
	case EventTap:
		return "tap"
	case EventTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// MaxPayloadBytes is the largest payload an event can carry.
const MaxPayloadBytes = 64

// TimerID names a one-shot timer.
type TimerID uint8

// Event is a fixed-size event envelope. Which fields are meaningful depends
// on Kind.
type Event struct {
	Kind EventKind

	// Unix seconds: wall-clock time for ticks and taps.
	Unix int64

	// Flag carries Bluetooth connectivity, focus and the charging state.
	Flag bool
	// Value carries the battery percentage or an error code.
	Value uint8
	Timer TimerID

	Len  uint8
	Data [MaxPayloadBytes]byte
}

// Time returns the event timestamp in local time.
func (e *Event) Time() time.Time {
	return time.Unix(e.Unix, 0)
}

// Payload returns the carried bytes.
func (e *Event) Payload() []byte {
	return e.Data[:e.Len]
}

// SetPayload copies p into the event. It reports false when p does not fit.
func (e *Event) SetPayload(p []byte) bool {
	if len(p) > MaxPayloadBytes {
		return false
	}
	e.Len = uint8(copy(e.Data[:], p))
	return true
}
