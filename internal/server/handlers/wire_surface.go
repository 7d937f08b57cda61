// internal/server/handlers/wire_surface.go

package handlers

import (
	"encoding/json"
	"sync"

	"campusnav/internal/domain/geo"
	"campusnav/internal/mapsync"
)

// Wire commands sent to the map client. The browser holds the actual
// tile renderer; every surface operation the synchronizer performs is
// serialized as one of these.
type wireCommand struct {
	Type string `json:"type"`

	// init
	Center *geo.LatLng `json:"center,omitempty"`
	Zoom   int         `json:"zoom,omitempty"`
	Bounds *geo.Bounds `json:"bounds,omitempty"`

	// marker_add / marker_remove / popup_open
	ID    string     `json:"id,omitempty"`
	Title string     `json:"title,omitempty"`
	Glyph string     `json:"glyph,omitempty"`
	Color string     `json:"color,omitempty"`
	Popup *wirePopup `json:"popup,omitempty"`

	// marker_add / pan / map_click
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
	Animate bool    `json:"animate,omitempty"`
}

type wirePopup struct {
	Name          string `json:"name"`
	CategoryLabel string `json:"category_label"`
	Description   string `json:"description,omitempty"`
}

// wireSurface implements mapsync.Surface over a session send channel.
// The remote viewport exists as soon as the socket is up, so Init
// never reports ErrNotAttached here; the guard still matters for other
// Surface implementations.
//
// The mutex covers onClick and the marker registry: surface mutations
// arrive from the session work loop, but teardown runs on the read
// pump goroutine when the connection drops. Callbacks are invoked
// outside the lock; holding it across a click callback would invert
// lock order against the synchronizer's own mutex.
type wireSurface struct {
	send func(wireCommand)

	mu      sync.Mutex
	onClick func(lat, lng float64)
	markers map[string]*wireMarker
}

func newWireSurface(send func(wireCommand)) *wireSurface {
	return &wireSurface{
		send:    send,
		markers: make(map[string]*wireMarker),
	}
}

func (s *wireSurface) Init(cfg mapsync.SurfaceConfig) error {
	s.mu.Lock()
	s.onClick = cfg.OnClick
	s.mu.Unlock()

	center := cfg.Center
	bounds := cfg.Bounds
	s.send(wireCommand{
		Type:   "init",
		Center: &center,
		Zoom:   cfg.Zoom,
		Bounds: &bounds,
	})

	return nil
}

func (s *wireSurface) AddMarker(spec mapsync.MarkerSpec) (mapsync.Marker, error) {
	marker := &wireMarker{surface: s, spec: spec}

	s.mu.Lock()
	s.markers[spec.ID] = marker
	s.mu.Unlock()

	cmd := wireCommand{
		Type:  "marker_add",
		ID:    spec.ID,
		Lat:   spec.Pos.Lat,
		Lng:   spec.Pos.Lng,
		Title: spec.Title,
		Glyph: spec.Glyph,
		Color: spec.Color,
		Popup: &wirePopup{
			Name:          spec.Popup.Name,
			CategoryLabel: spec.Popup.CategoryLabel,
			Description:   spec.Popup.Description,
		},
	}
	s.send(cmd)

	return marker, nil
}

func (s *wireSurface) PanTo(pos geo.LatLng, zoom int, animate bool) {
	s.send(wireCommand{
		Type:    "pan",
		Lat:     pos.Lat,
		Lng:     pos.Lng,
		Zoom:    zoom,
		Animate: animate,
	})
}

func (s *wireSurface) Release() {
	s.mu.Lock()
	s.onClick = nil
	s.markers = make(map[string]*wireMarker)
	s.mu.Unlock()

	s.send(wireCommand{Type: "release"})
}

// handleClick routes a raw map click from the client into the click
// callback registered at Init, if any.
func (s *wireSurface) handleClick(lat, lng float64) {
	s.mu.Lock()
	onClick := s.onClick
	s.mu.Unlock()

	if onClick != nil {
		onClick(lat, lng)
	}
}

// markerClicked routes a marker click from the client into the
// marker's own click handler. A click racing the session teardown
// resolves no marker and is dropped.
func (s *wireSurface) markerClicked(id string) {
	s.mu.Lock()
	marker, ok := s.markers[id]
	s.mu.Unlock()

	if ok && marker.spec.OnClick != nil {
		marker.spec.OnClick()
	}
}

// wireMarker is the live handle for one marker on the remote viewport.
type wireMarker struct {
	surface *wireSurface
	spec    mapsync.MarkerSpec
}

func (m *wireMarker) Remove() {
	m.surface.mu.Lock()
	delete(m.surface.markers, m.spec.ID)
	m.surface.mu.Unlock()

	m.surface.send(wireCommand{Type: "marker_remove", ID: m.spec.ID})
}

func (m *wireMarker) OpenPopup() {
	m.surface.send(wireCommand{Type: "popup_open", ID: m.spec.ID})
}

func marshalCommand(cmd wireCommand) []byte {
	payload, _ := json.Marshal(cmd)
	return payload
}
