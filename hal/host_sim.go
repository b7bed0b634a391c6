//go:build !tinygo

package hal

import (
	"fmt"

	"watchface/face/proto"
)

// Simulator key bindings.
const (
	simKeyTap        = 't'
	simKeyBluetooth  = 'b'
	simKeyCharging   = 'c'
	simKeyObstruct   = 'o'
	simKeyFocus      = 'f'
	simKeyInverse    = 'i'
	simKeyReading    = 'w'
	simKeyBatteryUp  = '+'
	simKeyBatteryDn  = '-'
	simBatteryStep   = 5
	simReadingSample = 21.0
)

func (h *hostHAL) simulate(ev KeyEvent) {
	if !ev.Press {
		return
	}
	switch {
	case ev.Code == KeyUp || ev.Rune == simKeyBatteryUp:
		h.power.update(func(st *BatteryState) { st.Percent += simBatteryStep })
	case ev.Code == KeyDown || ev.Rune == simKeyBatteryDn:
		h.power.update(func(st *BatteryState) {
			if st.Percent < simBatteryStep {
				st.Percent = 0
				return
			}
			st.Percent -= simBatteryStep
		})
	}

	switch ev.Rune {
	case simKeyTap:
		h.in.tap()
	case simKeyBluetooth:
		h.radio.setConnected(!h.radio.Connected())
	case simKeyCharging:
		h.power.update(func(st *BatteryState) { st.Charging = !st.Charging })
	case simKeyObstruct:
		if h.disp.obstruction() == 0 {
			h.disp.setObstruction(hostObstructionHeight)
		} else {
			h.disp.setObstruction(0)
		}
	case simKeyFocus:
		h.in.setFocus(false)
		h.in.setFocus(true)
	case simKeyInverse:
		h.inverse = !h.inverse
		v := uint8(0)
		if h.inverse {
			v = 1
		}
		var w proto.DictWriter
		w.WriteUint8(proto.KeyInverse, v)
		h.radio.deliver(w.Bytes())
	case simKeyReading:
		h.radio.deliver(proto.TemperaturePayload(proto.FormatTemperature(simReadingSample)))
	}
	h.logger.WriteLineString(fmt.Sprintf("sim: key %q", ev.Rune))
}
