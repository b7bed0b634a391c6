// Package status shows battery and Bluetooth state in the top corners.
package status

import (
	"strconv"
	"time"

	"watchface/face/assets"
	"watchface/face/gfx"
	"watchface/face/logger"
	"watchface/face/style"
	"watchface/hal"
)

// Level is the battery icon selection.
type Level uint8

const (
	LevelFull Level = iota
	LevelMedium
	LevelLow
	LevelCharging
)

func (l Level) String() string {
	switch l {
	case LevelFull:
		return "full"
	case LevelMedium:
		return "medium"
	case LevelLow:
		return "low"
	case LevelCharging:
		return "charging"
	default:
		return "unknown"
	}
}

// Classify picks the battery level. Charging wins over any percentage.
func Classify(percent uint8, charging bool) Level {
	switch {
	case charging:
		return LevelCharging
	case percent <= 20:
		return LevelLow
	case percent <= 50:
		return LevelMedium
	default:
		return LevelFull
	}
}

// Color is the level colour on colour displays.
func (l Level) Color() gfx.Color {
	switch l {
	case LevelLow:
		return gfx.ColorRed
	case LevelMedium:
		return gfx.ColorYellow
	default:
		return gfx.ColorGreen
	}
}

// Icon is the level's battery bitmap.
func (l Level) Icon() assets.ID {
	switch l {
	case LevelLow:
		return assets.BatteryLow
	case LevelMedium:
		return assets.BatteryHalf
	case LevelCharging:
		return assets.BatteryCharge
	default:
		return assets.BatteryFull
	}
}

// BatteryText is the percentage, prefixed with '+' while charging.
func BatteryText(s hal.BatteryState) string {
	t := strconv.Itoa(int(s.Percent))
	if s.Charging {
		return "+" + t
	}
	return t
}

// DisconnectPattern is the vibration played when the phone link drops.
var DisconnectPattern = []time.Duration{
	300 * time.Millisecond,
	100 * time.Millisecond,
	300 * time.Millisecond,
	100 * time.Millisecond,
	300 * time.Millisecond,
}

// Source is peeked for the current battery and connection state.
type Source interface {
	Battery() hal.BatteryState
	Connected() bool
}

// Vibrator plays vibration patterns.
type Vibrator interface {
	Pattern(segments []time.Duration)
}

// Icons loads and frees icon bitmaps.
type Icons interface {
	Load(id assets.ID) (*gfx.Bitmap, error)
	Free(b *gfx.Bitmap)
}

const (
	paddingV = 10
	paddingH = 6
)

// Config wires a Cache.
type Config struct {
	Width        int
	ColorDisplay bool

	Source   Source
	Vibrator Vibrator
	Icons    Icons
	Logger   *logger.Logger
}

// icon is one bitmap element and the resource it currently shows.
type icon struct {
	layer *gfx.BitmapLayer
	bmp   *gfx.Bitmap
	id    assets.ID
}

// Cache tracks battery and Bluetooth state and keeps the status elements in
// sync with it.
type Cache struct {
	cfg Config

	battText *gfx.TextLayer
	batt     icon
	conn     icon

	palette style.Palette

	battery     hal.BatteryState
	prevPercent uint8
	level       Level
	connected   bool
	known       bool

	alerts int
}

// New creates the status elements. Nothing is shown until the first update.
func New(cfg Config) *Cache {
	return &Cache{
		cfg:      cfg,
		battText: gfx.NewTextLayer(gfx.Rect{X: paddingH - 3, Y: paddingV + 10, W: 30, H: 20}, assets.FontSmall, gfx.AlignCenter),
		batt:     icon{layer: gfx.NewBitmapLayer(gfx.Rect{X: paddingH + 4, Y: paddingV, W: assets.BatterySize, H: assets.BatterySize})},
		conn:     icon{layer: gfx.NewBitmapLayer(gfx.Rect{X: cfg.Width - assets.BTSize - paddingH, Y: paddingV + 2, W: assets.BTSize, H: assets.BTSize})},
		palette:  style.For(false),
	}
}

// Layers returns the elements to add to the window.
func (c *Cache) Layers() []gfx.Layer {
	return []gfx.Layer{c.battText, c.batt.layer, c.conn.layer}
}

// ApplyPalette restyles the status elements.
func (c *Cache) ApplyPalette(p style.Palette) {
	c.palette = p
	c.restyle()
}

func (c *Cache) restyle() {
	if c.cfg.ColorDisplay {
		col := c.level.Color()
		c.battText.SetColor(col)
		c.batt.layer.SetCompOp(gfx.CompSet)
		c.batt.layer.SetTint(col)
		c.conn.layer.SetCompOp(gfx.CompSet)
		c.conn.layer.SetTint(c.palette.Foreground)
		return
	}
	c.battText.SetColor(c.palette.Foreground)
	for _, l := range [...]*gfx.BitmapLayer{c.batt.layer, c.conn.layer} {
		l.SetCompOp(c.palette.Comp)
		l.SetTint(c.palette.Foreground)
	}
}

// OnBatteryChanged shows a new battery sample.
func (c *Cache) OnBatteryChanged(s hal.BatteryState) {
	if s.Percent > 100 {
		s.Percent = 100
	}
	if c.known {
		c.prevPercent = c.battery.Percent
	} else {
		c.prevPercent = s.Percent
	}
	c.battery = s
	c.level = Classify(s.Percent, s.Charging)

	c.battText.SetText(BatteryText(s))
	c.show(&c.batt, c.level.Icon())
	c.restyle()
}

// OnBluetoothChanged shows the link state and vibrates when it drops.
func (c *Cache) OnBluetoothChanged(connected bool) {
	alert := !connected && (c.connected || !c.known)
	c.setConnected(connected)
	if alert {
		c.alert()
	}
}

// OnFocusChanged re-reads both states when the face regains focus. A link
// that is still down alerts again.
func (c *Cache) OnFocusChanged(focused bool) {
	if !focused || c.cfg.Source == nil {
		return
	}
	connected := c.cfg.Source.Connected()
	c.setConnected(connected)
	if !connected {
		c.alert()
	}
	c.OnBatteryChanged(c.cfg.Source.Battery())
}

// Update re-reads both states without alerting.
func (c *Cache) Update() {
	if c.cfg.Source == nil {
		return
	}
	c.setConnected(c.cfg.Source.Connected())
	c.OnBatteryChanged(c.cfg.Source.Battery())
}

func (c *Cache) setConnected(connected bool) {
	c.connected, c.known = connected, true
	id := assets.BTConnect
	if !connected {
		id = assets.BTDisconnect
	}
	c.show(&c.conn, id)
}

func (c *Cache) alert() {
	c.alerts++
	c.cfg.Logger.Infof("bluetooth disconnected")
	if c.cfg.Vibrator != nil {
		c.cfg.Vibrator.Pattern(DisconnectPattern)
	}
}

// show swaps the icon bitmap, freeing the old one first. The icon is
// hidden when loading fails.
func (c *Cache) show(ic *icon, id assets.ID) {
	if ic.bmp != nil && ic.id == id {
		return
	}
	c.free(ic)
	if c.cfg.Icons == nil {
		return
	}
	b, err := c.cfg.Icons.Load(id)
	if err != nil {
		ic.layer.SetHidden(true)
		c.cfg.Logger.Errorf("icon %d: %v", id, err)
		return
	}
	ic.bmp, ic.id = b, id
	ic.layer.SetBitmap(b)
	ic.layer.SetHidden(false)
}

func (c *Cache) free(ic *icon) {
	if ic.bmp == nil {
		return
	}
	ic.layer.SetBitmap(nil)
	c.cfg.Icons.Free(ic.bmp)
	ic.bmp = nil
}

// Close frees both icons.
func (c *Cache) Close() {
	c.free(&c.batt)
	c.free(&c.conn)
}

// Battery, PrevPercent, Level, Connected and BatteryText report the cached
// state as last drawn.
func (c *Cache) Battery() hal.BatteryState { return c.battery }
func (c *Cache) PrevPercent() uint8        { return c.prevPercent }
func (c *Cache) Level() Level              { return c.level }
func (c *Cache) Connected() bool           { return c.connected }
func (c *Cache) BatteryText() string       { return c.battText.Text() }

// Alerts counts disconnect vibrations.
func (c *Cache) Alerts() int { return c.alerts }

// BatteryIcon and LinkIcon return the resources currently shown.
func (c *Cache) BatteryIcon() (assets.ID, bool) { return c.batt.id, c.batt.bmp != nil }
func (c *Cache) LinkIcon() (assets.ID, bool)    { return c.conn.id, c.conn.bmp != nil }
