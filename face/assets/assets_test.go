package assets

import (
	"errors"
	"testing"

	"watchface/face/gfx"
)

func inkCount(b *gfx.Bitmap) int {
	n := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !b.Paper(x, y) {
				n++
			}
		}
	}
	return n
}

func TestLoadEveryResource(t *testing.T) {
	var pool gfx.Pool
	l := NewLoader(&pool)

	for id := Digit0; id < numIDs; id++ {
		b, err := l.Load(id)
		if err != nil {
			t.Fatalf("Load(%d) err = %v", id, err)
		}
		w, h, _ := Size(id)
		if b.Width() != w || b.Height() != h {
			t.Fatalf("Load(%d) size = %dx%d; want %dx%d", id, b.Width(), b.Height(), w, h)
		}
		if inkCount(b) == 0 {
			t.Fatalf("Load(%d) drew nothing", id)
		}
		l.Free(b)
	}
	if got := pool.InUse(); got != 0 {
		t.Fatalf("InUse() = %d; want 0", got)
	}
}

func TestDigitIsStretchedAndCentred(t *testing.T) {
	var pool gfx.Pool
	b, err := NewLoader(&pool).Load(Digit8)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	top, bottom := -1, -1
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !b.Paper(x, y) {
				if top < 0 {
					top = y
				}
				bottom = y
				break
			}
		}
	}
	if height := bottom - top + 1; height < DigitHeight/2 {
		t.Fatalf("glyph height = %d; want at least %d", height, DigitHeight/2)
	}
	if d := top - (DigitHeight - 1 - bottom); d < -2 || d > 2 {
		t.Fatalf("glyph margins top=%d bottom=%d; want centred", top, DigitHeight-1-bottom)
	}
}

func TestDigitsSource(t *testing.T) {
	var pool gfx.Pool
	src := NewLoader(&pool).Digits()

	if _, err := src.Acquire(10); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("Acquire(10) err = %v; want ErrUnknownResource", err)
	}
	b, err := src.Acquire(3)
	if err != nil {
		t.Fatalf("Acquire(3) err = %v", err)
	}
	src.Release(b)
	if acquired, released := pool.Stats(); acquired != 1 || released != 1 {
		t.Fatalf("Stats() = %d,%d; want 1,1", acquired, released)
	}
}

func TestLoadPoolExhausted(t *testing.T) {
	var pool gfx.Pool
	l := NewLoader(&pool)
	for i := 0; i < gfx.PoolSlots; i++ {
		if _, err := l.Load(BTConnect); err != nil {
			t.Fatalf("Load() #%d err = %v", i, err)
		}
	}
	if _, err := l.Load(Digit1); !errors.Is(err, gfx.ErrPoolExhausted) {
		t.Fatalf("Load() err = %v; want ErrPoolExhausted", err)
	}
}

func TestSizeUnknown(t *testing.T) {
	if _, _, err := Size(numIDs); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("Size() err = %v; want ErrUnknownResource", err)
	}
}

func TestIconArtWidths(t *testing.T) {
	for id := BatteryFull; id < numIDs; id++ {
		w, h, _ := Size(id)
		rows := art(id)
		if len(rows) != h {
			t.Fatalf("art(%d) rows = %d; want %d", id, len(rows), h)
		}
		for i, r := range rows {
			if len(r) != w {
				t.Fatalf("art(%d) row %d width = %d; want %d", id, i, len(r), w)
			}
		}
	}
}
