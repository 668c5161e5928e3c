package counter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0, 0, "0"},
		{12.345, 2, "12.35"},
		{1.005, 2, "1.01"},
		{2.5, 0, "3"},
		{-2.5, 0, "-3"},
		{0.125, 2, "0.13"},
		{99.994, 2, "99.99"},
		{99.995, 2, "100.00"},
		{7, 3, "7.000"},
		{1234567.891, 1, "1234567.9"},
		{-0.4, 0, "0"},
		{-0.001, 2, "0.00"},
		{-12.5, 1, "-12.5"},
		{3.7, -1, "4"},
		{1e21, 0, "1000000000000000000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fixed(tt.v, tt.decimals), "Fixed(%v, %d)", tt.v, tt.decimals)
	}
}

func TestFixedNonFinite(t *testing.T) {
	assert.Equal(t, "NaN", Fixed(math.NaN(), 2))
	assert.Equal(t, "+Inf", Fixed(math.Inf(1), 0))
	assert.Equal(t, "-Inf", Fixed(math.Inf(-1), 0))
}
