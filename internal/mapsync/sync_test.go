package mapsync

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/internal/domain/geo"
	"campusnav/internal/domain/location"
)

type panCall struct {
	pos     geo.LatLng
	zoom    int
	animate bool
}

type fakeMarker struct {
	surface   *fakeSurface
	spec      MarkerSpec
	removed   bool
	popupOpen bool
}

func (m *fakeMarker) Remove() {
	m.removed = true
	delete(m.surface.live, m.spec.ID)
}

func (m *fakeMarker) OpenPopup() {
	m.popupOpen = true
}

type fakeSurface struct {
	attached  bool
	initCalls int
	cfg       SurfaceConfig
	released  bool

	live map[string]*fakeMarker
	pans []panCall
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		attached: true,
		live:     make(map[string]*fakeMarker),
	}
}

func (s *fakeSurface) Init(cfg SurfaceConfig) error {
	if !s.attached {
		return ErrNotAttached
	}
	s.initCalls++
	s.cfg = cfg
	return nil
}

func (s *fakeSurface) AddMarker(spec MarkerSpec) (Marker, error) {
	marker := &fakeMarker{surface: s, spec: spec}
	s.live[spec.ID] = marker
	return marker, nil
}

func (s *fakeSurface) PanTo(pos geo.LatLng, zoom int, animate bool) {
	s.pans = append(s.pans, panCall{pos: pos, zoom: zoom, animate: animate})
}

func (s *fakeSurface) Release() {
	s.released = true
}

func testLocation(id, name string, lat, lng float64) location.Location {
	return location.Location{
		ID:       id,
		Name:     name,
		Lat:      lat,
		Lng:      lng,
		Category: location.CategoryAcademic,
	}
}

func mountedSync(t *testing.T, surface *fakeSurface, cfg Config) *Synchronizer {
	t.Helper()
	s := New(surface, cfg)
	ready, err := s.Mount()
	require.NoError(t, err)
	require.True(t, ready)
	return s
}

func TestMountIsIdempotent(t *testing.T) {
	surface := newFakeSurface()
	s := New(surface, Config{})

	for i := 0; i < 3; i++ {
		ready, err := s.Mount()
		require.NoError(t, err)
		assert.True(t, ready)
	}

	assert.Equal(t, 1, surface.initCalls, "surface must be initialized exactly once")
}

func TestMountRetriesWhenViewportNotAttached(t *testing.T) {
	surface := newFakeSurface()
	surface.attached = false

	s := New(surface, Config{})

	ready, err := s.Mount()
	require.NoError(t, err)
	assert.False(t, ready)
	assert.False(t, s.Ready())
	assert.Zero(t, surface.initCalls)

	// Viewport shows up; the next mount succeeds.
	surface.attached = true

	ready, err = s.Mount()
	require.NoError(t, err)
	assert.True(t, ready)
	assert.True(t, s.Ready())
}

func TestReconcileRegistryMatchesInput(t *testing.T) {
	surface := newFakeSurface()
	s := mountedSync(t, surface, Config{})

	first := []location.Location{
		testLocation("1", "Library", 20.35, 85.82),
		testLocation("2", "Hostel A", 20.36, 85.81),
		testLocation("3", "Food Court", 20.352, 85.825),
	}
	require.NoError(t, s.Reconcile(first))

	ids := s.MarkerIDs()
	sort.Strings(ids)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	// Shrink the list; the registry must track exactly.
	second := []location.Location{
		testLocation("2", "Hostel A", 20.36, 85.81),
	}
	require.NoError(t, s.Reconcile(second))

	assert.Equal(t, []string{"2"}, s.MarkerIDs())
	assert.Len(t, surface.live, 1, "stale markers must be removed from the surface")

	// Empty list clears everything.
	require.NoError(t, s.Reconcile(nil))
	assert.Empty(t, s.MarkerIDs())
	assert.Empty(t, surface.live)
}

func TestReconcileMarkerCarriesCategoryPresentation(t *testing.T) {
	surface := newFakeSurface()
	s := mountedSync(t, surface, Config{})

	desc := "All-night reading room"
	loc := testLocation("1", "Library", 20.35, 85.82)
	loc.Description = &desc

	require.NoError(t, s.Reconcile([]location.Location{loc}))

	marker := surface.live["1"]
	require.NotNil(t, marker)
	assert.Equal(t, "🏫", marker.spec.Glyph)
	assert.Equal(t, "Academic", marker.spec.Popup.CategoryLabel)
	assert.Equal(t, "Library", marker.spec.Popup.Name)
	assert.Equal(t, desc, marker.spec.Popup.Description)
}

func TestSelectionPansAndOpensPopup(t *testing.T) {
	surface := newFakeSurface()
	s := mountedSync(t, surface, Config{FocusZoom: 17})

	loc := testLocation("1", "Library", 20.35, 85.82)
	require.NoError(t, s.Reconcile([]location.Location{loc}))

	s.SetSelection(&loc)

	require.Len(t, surface.pans, 1)
	assert.Equal(t, geo.LatLng{Lat: 20.35, Lng: 85.82}, surface.pans[0].pos)
	assert.Equal(t, 17, surface.pans[0].zoom)
	assert.True(t, surface.pans[0].animate)
	assert.True(t, surface.live["1"].popupOpen)
}

func TestSelectionWithoutMarkerIsSilent(t *testing.T) {
	surface := newFakeSurface()
	s := mountedSync(t, surface, Config{FocusZoom: 17})

	require.NoError(t, s.Reconcile([]location.Location{
		testLocation("1", "Library", 20.35, 85.82),
	}))

	// Selected location was filtered out of the current list: pan
	// still follows the selection, but no popup can open.
	other := testLocation("ghost", "Old Gate", 20.36, 85.83)
	s.SetSelection(&other)

	require.Len(t, surface.pans, 1)
	assert.Equal(t, geo.LatLng{Lat: 20.36, Lng: 85.83}, surface.pans[0].pos)
	assert.False(t, surface.live["1"].popupOpen)
}

func TestClearingSelectionKeepsViewport(t *testing.T) {
	surface := newFakeSurface()
	s := mountedSync(t, surface, Config{FocusZoom: 17})

	loc := testLocation("1", "Library", 20.35, 85.82)
	require.NoError(t, s.Reconcile([]location.Location{loc}))

	s.SetSelection(&loc)
	require.Len(t, surface.pans, 1)

	s.SetSelection(nil)
	assert.Len(t, surface.pans, 1, "clearing the selection must not move the viewport")
}

func TestMarkerClickReportsSelection(t *testing.T) {
	surface := newFakeSurface()

	var selected *location.Location
	s := mountedSync(t, surface, Config{
		OnSelect: func(loc location.Location) { selected = &loc },
	})

	loc := testLocation("1", "Library", 20.35, 85.82)
	require.NoError(t, s.Reconcile([]location.Location{loc}))

	marker := surface.live["1"]
	require.NotNil(t, marker.spec.OnClick)
	marker.spec.OnClick()

	require.NotNil(t, selected)
	assert.Equal(t, "1", selected.ID)
}

func TestAdminClickCallbackIsForwarded(t *testing.T) {
	surface := newFakeSurface()

	var gotLat, gotLng float64
	cfg := Config{
		Surface: SurfaceConfig{
			OnClick: func(lat, lng float64) { gotLat, gotLng = lat, lng },
		},
	}
	mountedSync(t, surface, cfg)

	require.NotNil(t, surface.cfg.OnClick)
	surface.cfg.OnClick(20.355, 85.819)

	assert.Equal(t, 20.355, gotLat)
	assert.Equal(t, 85.819, gotLng)
}

func TestCloseReleasesEverything(t *testing.T) {
	surface := newFakeSurface()
	s := mountedSync(t, surface, Config{})

	require.NoError(t, s.Reconcile([]location.Location{
		testLocation("1", "Library", 20.35, 85.82),
	}))

	s.Close()

	assert.True(t, surface.released)
	assert.Empty(t, surface.live)
	assert.Empty(t, s.MarkerIDs())
	assert.False(t, s.Ready())

	// A closed synchronizer refuses further work.
	_, err := s.Mount()
	assert.Error(t, err)
	assert.Error(t, s.Reconcile(nil))
}
