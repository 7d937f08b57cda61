// internal/mapsync/sync.go

// Package mapsync keeps a declarative location list in one-to-one
// correspondence with the markers of a live map surface, without ever
// tearing down and recreating the surface itself.
package mapsync

import (
	"fmt"
	"sync"

	"campusnav/internal/domain/location"
)

// Config configures a Synchronizer.
type Config struct {
	Surface SurfaceConfig

	// FocusZoom is the closer zoom level used when panning to a
	// selected location.
	FocusZoom int

	// OnSelect fires when the user clicks a marker. The callback
	// receives the clicked location.
	OnSelect func(loc location.Location)
}

// Synchronizer owns one map surface and an id-keyed marker registry,
// its only persistent state besides the surface handle. It moves from
// unmounted to ready exactly once per surface; repeated reconciliation
// never re-initializes, because recreating the surface would flicker
// and lose the user's pan/zoom position.
type Synchronizer struct {
	surface Surface
	cfg     Config

	mu      sync.Mutex
	ready   bool
	closed  bool
	markers map[string]Marker
}

// New creates a synchronizer over the given surface. The surface is not
// touched until Mount.
func New(surface Surface, cfg Config) *Synchronizer {
	return &Synchronizer{
		surface: surface,
		cfg:     cfg,
		markers: make(map[string]Marker),
	}
}

// Mount initializes the surface. It is idempotent: once ready it does
// nothing, and when the viewport is not attached yet it reports false
// so the caller can retry later. Any other surface error is returned.
func (s *Synchronizer) Mount() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, fmt.Errorf("synchronizer is closed")
	}
	if s.ready {
		return true, nil
	}

	if err := s.surface.Init(s.cfg.Surface); err != nil {
		if err == ErrNotAttached {
			return false, nil
		}
		return false, err
	}

	s.ready = true
	return true, nil
}

// Ready reports whether the surface has been initialized.
func (s *Synchronizer) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Reconcile rebuilds the marker set from the given list: full clear,
// then one marker per location in list order. Clear-and-rebuild is a
// deliberate tradeoff at campus scale; the post-condition that matters
// is that the registry's key set equals the list's id set exactly, so
// a removed location's marker can never be clicked.
func (s *Synchronizer) Reconcile(locations []location.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready || s.closed {
		return fmt.Errorf("map surface is not ready")
	}

	for id, marker := range s.markers {
		marker.Remove()
		delete(s.markers, id)
	}

	for _, loc := range locations {
		loc := loc
		desc := loc.Category.Descriptor()

		spec := MarkerSpec{
			ID:    loc.ID,
			Pos:   loc.Position(),
			Title: loc.Name,
			Glyph: desc.Glyph,
			Color: desc.Color,
			Popup: Popup{
				Name:          loc.Name,
				CategoryLabel: desc.Label,
			},
		}
		if loc.Description != nil {
			spec.Popup.Description = *loc.Description
		}
		if s.cfg.OnSelect != nil {
			spec.OnClick = func() { s.cfg.OnSelect(loc) }
		}

		marker, err := s.surface.AddMarker(spec)
		if err != nil {
			return fmt.Errorf("error adding marker for %s: %w", loc.ID, err)
		}
		s.markers[loc.ID] = marker
	}

	return nil
}

// SetSelection follows an external selection change. A non-nil
// selection pans the viewport to it at the focus zoom with animation
// and opens its popup if a live marker exists; a selection absent from
// the registry is a valid transient state and only pans. A nil
// selection deliberately leaves the viewport alone so clearing a
// detail card does not jar the user's view.
func (s *Synchronizer) SetSelection(loc *location.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready || s.closed || loc == nil {
		return
	}

	s.surface.PanTo(loc.Position(), s.cfg.FocusZoom, true)

	if marker, ok := s.markers[loc.ID]; ok {
		marker.OpenPopup()
	}
}

// MarkerIDs returns the ids currently tracked in the registry.
func (s *Synchronizer) MarkerIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.markers))
	for id := range s.markers {
		ids = append(ids, id)
	}
	return ids
}

// Close removes every marker and releases the surface with its click
// listener. The synchronizer cannot be reused afterwards.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, marker := range s.markers {
		marker.Remove()
		delete(s.markers, id)
	}

	if s.ready {
		s.surface.Release()
		s.ready = false
	}
}
