// internal/domain/geo/geo.go

package geo

// LatLng is a WGS84 coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a hard geographic bound box. The map surface refuses to pan
// or zoom outside it; data entry is not clamped against it.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat <= b.North && p.Lat >= b.South &&
		p.Lng <= b.East && p.Lng >= b.West
}

// Center returns the midpoint of the box.
func (b Bounds) Center() LatLng {
	return LatLng{
		Lat: (b.North + b.South) / 2,
		Lng: (b.East + b.West) / 2,
	}
}
