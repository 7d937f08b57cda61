package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var campus = Bounds{North: 20.37, South: 20.34, East: 85.84, West: 85.80}

func TestBoundsContains(t *testing.T) {
	assert.True(t, campus.Contains(LatLng{Lat: 20.3532, Lng: 85.8180}))
	assert.True(t, campus.Contains(LatLng{Lat: 20.37, Lng: 85.84}), "edges are inclusive")

	assert.False(t, campus.Contains(LatLng{Lat: 20.38, Lng: 85.82}))
	assert.False(t, campus.Contains(LatLng{Lat: 20.35, Lng: 85.79}))
}

func TestBoundsCenter(t *testing.T) {
	center := campus.Center()
	assert.InDelta(t, 20.355, center.Lat, 1e-9)
	assert.InDelta(t, 85.82, center.Lng, 1e-9)
}
