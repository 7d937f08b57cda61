// internal/mapsync/surface.go

package mapsync

import (
	"errors"

	"campusnav/internal/domain/geo"
)

// ErrNotAttached is returned by Surface.Init when the hosting viewport
// is not ready yet. Initialization is then skipped and retried on the
// next opportunity; the surface must never be partially constructed.
var ErrNotAttached = errors.New("map surface viewport is not attached")

// SurfaceConfig describes how a surface is initialized: fixed center
// and zoom, plus a hard bound box the viewport may never leave under
// user drag or zoom (maximum resistance).
type SurfaceConfig struct {
	Center geo.LatLng
	Zoom   int
	Bounds geo.Bounds

	// OnClick, when set, receives the raw coordinates of every map
	// click that does not hit a marker. It is only wired in admin mode
	// and is the sole way new locations acquire coordinates.
	OnClick func(lat, lng float64)
}

// Popup is the content attached to a marker.
type Popup struct {
	Name          string
	CategoryLabel string
	Description   string
}

// MarkerSpec describes a marker to place on the surface.
type MarkerSpec struct {
	ID    string
	Pos   geo.LatLng
	Title string
	Glyph string
	Color string
	Popup Popup

	// OnClick fires when the user clicks this marker.
	OnClick func()
}

// Marker is a live marker handle on a surface.
type Marker interface {
	// Remove takes the marker off the surface and releases its click
	// handler.
	Remove()

	// OpenPopup programmatically opens the marker's popup.
	OpenPopup()
}

// Surface is the persistent, stateful map viewport: it renders tiles
// and markers and owns pan/zoom/click handling. Implementations are a
// wire protocol to a remote renderer in production and a fake in tests.
type Surface interface {
	// Init prepares the surface exactly once. Returns ErrNotAttached
	// when the hosting viewport does not exist yet.
	Init(cfg SurfaceConfig) error

	// AddMarker places a marker and returns its handle.
	AddMarker(spec MarkerSpec) (Marker, error)

	// PanTo moves the viewport to center on pos at the given zoom.
	PanTo(pos geo.LatLng, zoom int, animate bool)

	// Release tears the surface down, dropping every listener.
	Release()
}
