//go:build !tinygo && !cgo

package hal

import (
	"fmt"
	"time"
)

// hostHaptics only logs when no audio backend is available.
type hostHaptics struct {
	logger *hostLogger
}

func newHostHaptics(logger *hostLogger) *hostHaptics {
	return &hostHaptics{logger: logger}
}

func (h *hostHaptics) enableAudio() {}

func (h *hostHaptics) Pattern(segments []time.Duration) {
	h.logger.WriteLineString(fmt.Sprintf("haptics: pattern %v", segments))
}

func (h *hostHaptics) LongPulse() {
	h.logger.WriteLineString("haptics: long pulse")
}
