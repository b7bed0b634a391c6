//go:build !tinygo && cgo

package hal

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	buzzSampleRate = 44100
	buzzHz         = 150
	buzzAmplitude  = 6000

	longPulse = 500 * time.Millisecond
)

// hostHaptics renders vibration requests as a low buzz on the desktop and
// logs every request.
type hostHaptics struct {
	logger *hostLogger

	mu      sync.Mutex
	audible bool
	ctx     *audio.Context
	player  *audio.Player
}

func newHostHaptics(logger *hostLogger) *hostHaptics {
	return &hostHaptics{logger: logger}
}

// enableAudio turns on playback. Only the window runner calls it.
func (h *hostHaptics) enableAudio() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.audible = true
}

func (h *hostHaptics) Pattern(segments []time.Duration) {
	h.logger.WriteLineString(fmt.Sprintf("haptics: pattern %v", segments))
	h.play(segments)
}

func (h *hostHaptics) LongPulse() {
	h.logger.WriteLineString("haptics: long pulse")
	h.play([]time.Duration{longPulse})
}

func (h *hostHaptics) play(segments []time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.audible {
		return
	}
	if h.ctx == nil {
		h.ctx = audio.NewContext(buzzSampleRate)
	}
	if h.player != nil {
		_ = h.player.Close()
		h.player = nil
	}
	h.player = h.ctx.NewPlayerFromBytes(buzzPCM(segments))
	h.player.Play()
}

// buzzPCM renders alternating on/off segments as 16-bit little-endian stereo.
func buzzPCM(segments []time.Duration) []byte {
	var total int
	for _, d := range segments {
		total += int(d.Seconds() * buzzSampleRate)
	}
	out := make([]byte, 0, total*4)
	half := buzzSampleRate / buzzHz / 2
	for i, d := range segments {
		n := int(d.Seconds() * buzzSampleRate)
		on := i%2 == 0
		for j := 0; j < n; j++ {
			var s int16
			if on {
				s = buzzAmplitude
				if (j/half)%2 == 1 {
					s = -buzzAmplitude
				}
			}
			out = append(out, byte(s), byte(s>>8), byte(s), byte(s>>8))
		}
	}
	return out
}
