package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// Lisbon to Porto, roughly 274 km.
	d := HaversineKm(38.7223, -9.1393, 41.1579, -8.6291)
	assert.InDelta(t, 274, d, 10)

	// New York to London, roughly 5570 km.
	d = HaversineKm(40.7128, -74.0060, 51.5074, -0.1278)
	assert.InDelta(t, 5570, d, 50)
}

func TestHaversineKm_SamePoint(t *testing.T) {
	assert.Zero(t, HaversineKm(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(38.7223, -9.1393, 41.1579, -8.6291)
	b := HaversineKm(41.1579, -8.6291, 38.7223, -9.1393)
	assert.InDelta(t, a, b, 1e-9)
}
