package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate(t *testing.T) {
	light := DefaultTariff()[Light].Gate
	assert.True(t, light.Open(299))
	assert.False(t, light.Open(300))

	gas := DefaultTariff()[Gas].Gate
	assert.False(t, gas.Open(350))
	assert.True(t, gas.Open(351))

	water := DefaultTariff()[Water].Gate
	assert.False(t, water.Open(400))
	assert.True(t, water.Open(401))
}

func TestSchedule_RateFor(t *testing.T) {
	tr := DefaultTariff()

	cases := []struct {
		res  Resource
		acc  float64
		want float64
	}{
		{Light, 0, 0.084},
		{Light, 200, 0.084},
		{Light, 200.0001, 0.10},
		{Light, 300, 0.10},
		{Light, 300.5, 0.15},
		{Gas, 1200, 0.125},
		{Gas, 1200.5, 0.20},
		{Gas, 2200, 0.20},
		{Gas, 9999, 0.30},
		{Water, 0, 1.0},
		{Water, 1e9, 1.0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tr[c.res].RateFor(c.acc), "%s at %v", c.res, c.acc)
	}
}

func TestSchedule_String(t *testing.T) {
	assert.Equal(t, "gate <300, [..200] rate=0.084 [..300] rate=0.1 [..∞] rate=0.15", DefaultTariff()[Light].String())
}

func TestUnit(t *testing.T) {
	assert.Equal(t, 1.0, Unit(1023))
	assert.Zero(t, Unit(0))
	assert.Equal(t, 2046.0/1023, Unit(2046))
}
