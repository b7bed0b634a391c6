//go:build !tinygo && !cgo

package persist

import "watchface/hal"

// LittleFS needs cgo on the host; without it the store stays in memory.
func mount(hal.Flash) (backend, error) {
	return nil, nil
}
