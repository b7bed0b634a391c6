// Package kernel is the cooperative event loop the watchface runs on.
//
// Producers post fixed-size events into a bounded mailbox; Step dispatches
// one event to its subscribed handler and runs it to completion. Nothing in
// the loop allocates after construction.
package kernel

import "time"

const maxTimers = 4

// Handler consumes one event.
type Handler func(Event)

// PostResult describes the outcome of a post attempt.
type PostResult uint8

const (
	PostOK PostResult = iota
	PostErrQueueFull
	PostErrNoHandler
	PostErrBadKind
	PostErrNoTimer
	PostErrPanicked
)

func (r PostResult) String() string {
	switch r {
	case PostOK:
		return "ok"
	case PostErrQueueFull:
		return "queue full"
	case PostErrNoHandler:
		return "no handler"
	case PostErrBadKind:
		return "bad event kind"
	case PostErrNoTimer:
		return "no free timer"
	case PostErrPanicked:
		return "loop panicked"
	default:
		return "unknown"
	}
}

type timer struct {
	armed bool
	id    TimerID
	due   time.Time
}

// Loop is a single-threaded event dispatcher. It is not safe for concurrent
// use: one goroutine posts, advances and steps.
type Loop struct {
	mbox     mailbox
	handlers [numEventKinds]Handler
	timers   [maxTimers]timer

	dispatched uint32
	dropped    uint32

	panicked bool
	onPanic  func(PanicInfo)
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{}
}

// Subscribe installs fn as the handler for kind, replacing any previous one.
func (l *Loop) Subscribe(kind EventKind, fn Handler) {
	if kind == 0 || kind >= numEventKinds {
		return
	}
	l.handlers[kind] = fn
}

// Unsubscribe removes the handler for kind. Queued events of that kind are
// discarded when they are reached.
func (l *Loop) Unsubscribe(kind EventKind) {
	if kind == 0 || kind >= numEventKinds {
		return
	}
	l.handlers[kind] = nil
}

// Subscribed reports whether kind has a handler.
func (l *Loop) Subscribed(kind EventKind) bool {
	if kind == 0 || kind >= numEventKinds {
		return false
	}
	return l.handlers[kind] != nil
}

// Post enqueues ev without blocking.
func (l *Loop) Post(ev Event) PostResult {
	if l.panicked {
		return PostErrPanicked
	}
	if ev.Kind == 0 || ev.Kind >= numEventKinds {
		return PostErrBadKind
	}
	if l.handlers[ev.Kind] == nil {
		return PostErrNoHandler
	}
	if !l.mbox.push(ev) {
		l.dropped++
		return PostErrQueueFull
	}
	return PostOK
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	return l.mbox.len()
}

// Stats returns the number of dispatched events and of events dropped
// because the mailbox was full.
func (l *Loop) Stats() (dispatched, dropped uint32) {
	return l.dispatched, l.dropped
}

// Step dispatches at most one event. It reports whether an event was taken
// from the mailbox.
func (l *Loop) Step() bool {
	if l.panicked {
		return false
	}
	ev, ok := l.mbox.pop()
	if !ok {
		return false
	}
	fn := l.handlers[ev.Kind]
	if fn == nil {
		return true
	}
	l.dispatch(fn, ev)
	return true
}

// Drain steps until the mailbox is empty or limit events were handled.
// limit <= 0 means no limit.
func (l *Loop) Drain(limit int) int {
	n := 0
	for limit <= 0 || n < limit {
		if !l.Step() {
			break
		}
		n++
	}
	return n
}

func (l *Loop) dispatch(fn Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			l.triggerPanic(PanicInfo{Kind: ev.Kind, Value: r})
		}
	}()
	l.dispatched++
	fn(ev)
}

// Schedule arms a one-shot timer that posts an EventTimer carrying id once
// Advance reaches due. Scheduling an armed id moves its deadline.
func (l *Loop) Schedule(id TimerID, due time.Time) PostResult {
	free := -1
	for i := range l.timers {
		t := &l.timers[i]
		if t.armed && t.id == id {
			t.due = due
			return PostOK
		}
		if !t.armed && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return PostErrNoTimer
	}
	l.timers[free] = timer{armed: true, id: id, due: due}
	return PostOK
}

// Cancel disarms the timer with id, if armed.
func (l *Loop) Cancel(id TimerID) {
	for i := range l.timers {
		if l.timers[i].armed && l.timers[i].id == id {
			l.timers[i] = timer{}
		}
	}
}

// Advance fires every timer whose deadline is not after now.
func (l *Loop) Advance(now time.Time) {
	for i := range l.timers {
		t := &l.timers[i]
		if !t.armed || t.due.After(now) {
			continue
		}
		id := t.id
		*t = timer{}
		l.Post(Event{Kind: EventTimer, Timer: id, Unix: now.Unix()})
	}
}
