//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"watchface/face/proto"
)

// hostRadio simulates the phone link. Its companion answers refresh requests
// with a fixed reading when one is configured, and sends one unprompted when
// it starts.
type hostRadio struct {
	mu        sync.Mutex
	connected bool
	pending   bool

	logger *hostLogger
	temp   string

	conn    chan bool
	inbox   chan []byte
	dropped chan error
	failed  chan error
	sent    chan struct{}
}

func newHostRadio(logger *hostLogger, temp string) *hostRadio {
	if temp != "" {
		if v, err := strconv.ParseFloat(temp, 64); err == nil {
			temp = proto.FormatTemperature(v)
		}
	}
	return &hostRadio{
		connected: true,
		pending:   temp != "",
		logger:    logger,
		temp:      temp,
		conn:      make(chan bool, 4),
		inbox:     make(chan []byte, 4),
		dropped:   make(chan error, 4),
		failed:    make(chan error, 4),
		sent:      make(chan struct{}, 4),
	}
}

func (r *hostRadio) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

func (r *hostRadio) ConnectionEvents() <-chan bool { return r.conn }
func (r *hostRadio) Inbox() <-chan []byte          { return r.inbox }
func (r *hostRadio) Dropped() <-chan error         { return r.dropped }
func (r *hostRadio) Failed() <-chan error          { return r.failed }
func (r *hostRadio) Sent() <-chan struct{}         { return r.sent }

func (r *hostRadio) Send(payload []byte) error {
	if _, ok, err := proto.Find(payload, proto.KeyRequest); err != nil || !ok {
		return fmt.Errorf("radio send: %w", proto.ErrMalformed)
	}

	r.mu.Lock()
	connected := r.connected
	if connected {
		r.pending = true
	}
	r.mu.Unlock()

	if !connected {
		select {
		case r.failed <- ErrRadioDisconnected:
		default:
		}
		return ErrRadioDisconnected
	}
	select {
	case r.sent <- struct{}{}:
	default:
	}
	return nil
}

func (r *hostRadio) setConnected(v bool) {
	r.mu.Lock()
	r.connected = v
	r.mu.Unlock()

	select {
	case r.conn <- v:
	default:
	}
}

// deliver queues an inbound message, dropping it when the inbox is full.
func (r *hostRadio) deliver(payload []byte) {
	select {
	case r.inbox <- payload:
	default:
		select {
		case r.dropped <- errors.New("radio: inbox full"):
		default:
		}
	}
}

// step lets the companion answer the last request.
func (r *hostRadio) step() {
	r.mu.Lock()
	pending := r.pending && r.connected
	r.pending = false
	r.mu.Unlock()

	if !pending {
		return
	}
	if r.temp == "" {
		r.logger.WriteLineString("companion: no reading source (set FACE_COMPANION_TEMP)")
		return
	}
	r.deliver(proto.TemperaturePayload(r.temp))
}
