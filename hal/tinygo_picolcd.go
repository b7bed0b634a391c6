//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/st7789"
)

// Pico with a Waveshare Pico-LCD-1.3 (ST7789, 240x240) on SPI1.
const (
	panelWidth  = 240
	panelHeight = 240

	faceWidth  = 144
	faceHeight = 168
	faceX      = (panelWidth - faceWidth) / 2
	faceY      = (panelHeight - faceHeight) / 2

	batteryPoll = 30 * time.Second
)

type picoLCDHAL struct {
	logger  *serialLogger
	disp    fixedDisplay
	in      *tinyGoInput
	clock   *tinyGoClock
	flash   Flash
	power   *adcPower
	haptics *pinHaptics
}

// New returns the Pico LCD HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Key A (GP15) is the tap input; GP22 drives the vibration motor.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	panel := initPanel()
	in := &tinyGoInput{taps: make(chan struct{}, 1)}
	watchKey(machine.GP15, in.tap)

	return &picoLCDHAL{
		logger:  &serialLogger{s: uart},
		disp:    fixedDisplay{fb: newRAMFramebuffer(faceWidth, faceHeight, panel.present)},
		in:      in,
		clock:   newTinyGoClock(),
		flash:   newRP2Flash(),
		power:   newADCPower(),
		haptics: newPinHaptics(machine.GP22),
	}
}

func (h *picoLCDHAL) Logger() Logger   { return h.logger }
func (h *picoLCDHAL) Display() Display { return h.disp }
func (h *picoLCDHAL) Input() Input     { return h.in }
func (h *picoLCDHAL) Flash() Flash     { return h.flash }
func (h *picoLCDHAL) Clock() Clock     { return h.clock }
func (h *picoLCDHAL) Power() Power     { return h.power }
func (h *picoLCDHAL) Radio() Radio     { return nullRadio{} }
func (h *picoLCDHAL) Haptics() Haptics { return h.haptics }

type panel struct {
	dev st7789.Device
	row []byte
}

func initPanel() *panel {
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		Frequency: 40_000_000,
		Mode:      0,
	})
	dev := st7789.New(machine.SPI1, machine.GP12, machine.GP8, machine.GP9, machine.GP13)
	dev.Configure(st7789.Config{
		Width:     panelWidth,
		Height:    panelHeight,
		Rotation:  st7789.NO_ROTATION,
		FrameRate: st7789.FRAMERATE_60,
	})
	dev.FillScreen(color.RGBA{A: 0xFF})
	return &panel{dev: dev, row: make([]byte, faceWidth*2)}
}

// present copies the framebuffer row by row. The panel wants big-endian RGB565.
func (p *panel) present(buf []byte, w, h int) error {
	stride := w * 2
	for y := 0; y < h; y++ {
		src := buf[y*stride : (y+1)*stride]
		for i := 0; i+1 < len(src); i += 2 {
			p.row[i] = src[i+1]
			p.row[i+1] = src[i]
		}
		if err := p.dev.DrawRGBBitmap8(faceX, int16(faceY+y), p.row[:stride], int16(w), 1); err != nil {
			return err
		}
	}
	return nil
}

// watchKey polls an active-low key and calls fn on each press.
func watchKey(pin machine.Pin, fn func()) {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	go func() {
		prev := true
		for {
			level := pin.Get()
			if prev && !level {
				fn()
			}
			prev = level
			time.Sleep(20 * time.Millisecond)
		}
	}()
}

// adcPower estimates charge from VSYS (GP29, divided by 3) and reports USB
// power on GP24 as charging.
type adcPower struct {
	adc  machine.ADC
	vbus machine.Pin
	st   BatteryState
	ch   chan BatteryState
}

func newADCPower() *adcPower {
	machine.InitADC()
	p := &adcPower{
		adc:  machine.ADC{Pin: machine.GP29},
		vbus: machine.GP24,
		ch:   make(chan BatteryState, 1),
	}
	p.adc.Configure(machine.ADCConfig{})
	p.vbus.Configure(machine.PinConfig{Mode: machine.PinInput})
	p.st = p.sample()
	go p.run()
	return p
}

func (p *adcPower) Battery() BatteryState              { return p.st }
func (p *adcPower) BatteryEvents() <-chan BatteryState { return p.ch }

func (p *adcPower) run() {
	for {
		time.Sleep(batteryPoll)
		st := p.sample()
		if st == p.st {
			continue
		}
		p.st = st
		select {
		case p.ch <- st:
		default:
		}
	}
}

// sample maps 3.3V..4.2V on a Li-ion cell to 0..100%.
func (p *adcPower) sample() BatteryState {
	mv := uint32(p.adc.Get()) * 3 * 3300 / 65535
	var pct uint32
	switch {
	case mv <= 3300:
		pct = 0
	case mv >= 4200:
		pct = 100
	default:
		pct = (mv - 3300) * 100 / 900
	}
	return BatteryState{Percent: uint8(pct), Charging: p.vbus.Get()}
}
