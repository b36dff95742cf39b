package catalog

import (
	"math"
	"strconv"
	"strings"
)

// ParseCoord parses a single coordinate cell. Sheets exported with an
// Indonesian locale use a decimal comma, so "-7,3273" has to become -7.3273
// before parsing rather than truncating at the comma.
func ParseCoord(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	v = strings.ReplaceAll(v, ",", ".")

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseLatLon parses a coordinate pair. The pair is valid only when both
// halves parse to finite numbers; there is no range check beyond that.
func ParseLatLon(lat, lon string) (float64, float64, bool) {
	la, ok := ParseCoord(lat)
	if !ok {
		return 0, 0, false
	}
	lo, ok := ParseCoord(lon)
	if !ok {
		return 0, 0, false
	}
	return la, lo, true
}
