package counter

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Fixed formats v with exactly decimals fractional digits.
//
// Rounding is half away from zero, applied to the shortest decimal form of v
// rather than its exact binary value, so 12.345 becomes "12.35" and 1.005
// becomes "1.01". Values that round to zero never carry a minus sign.
func Fixed(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
	s := r.FloatString(decimals)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		s = s[1:]
	}
	return s
}
