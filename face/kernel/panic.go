package kernel

// PanicInfo contains details about a recovered handler panic.
type PanicInfo struct {
	Kind  EventKind
	Value any
	Stack []byte
}

// SetPanicHandler installs the loop's panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
// After a panic the loop stops dispatching and rejects posts.
func (l *Loop) SetPanicHandler(fn func(PanicInfo)) {
	l.onPanic = fn
}

// InPanicMode reports whether a handler has panicked.
func (l *Loop) InPanicMode() bool {
	return l.panicked
}

func (l *Loop) triggerPanic(info PanicInfo) {
	if l.panicked {
		return
	}
	l.panicked = true
	info.Stack = captureStack()
	if l.onPanic != nil {
		l.onPanic(info)
	}
}
