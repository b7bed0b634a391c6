package proto

import "strconv"

// FormatTemperature renders a Celsius reading the way the companion sends it:
// positive values carry a '+' sign and every value ends in 'C'.
func FormatTemperature(celsius float64) string {
	s := strconv.FormatFloat(celsius, 'f', -1, 64)
	if celsius > 0 {
		s = "+" + s
	}
	return s + "C"
}
