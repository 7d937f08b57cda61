// internal/server/handlers/wire_surface_test.go

package handlers

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/internal/domain/location"
	"campusnav/internal/mapsync"
)

func newTestWireSurface() (*wireSurface, *[]wireCommand, *sync.Mutex) {
	var mu sync.Mutex
	var sent []wireCommand
	surface := newWireSurface(func(cmd wireCommand) {
		mu.Lock()
		sent = append(sent, cmd)
		mu.Unlock()
	})
	return surface, &sent, &mu
}

func wireTestLocations(n int) []location.Location {
	locations := make([]location.Location, 0, n)
	for i := 0; i < n; i++ {
		locations = append(locations, location.Location{
			ID:       fmt.Sprintf("loc-%d", i),
			Name:     fmt.Sprintf("Building %d", i),
			Lat:      20.35,
			Lng:      85.82,
			Category: location.CategoryAcademic,
		})
	}
	return locations
}

func TestWireSurfaceSerializesMarkerCommands(t *testing.T) {
	surface, sent, mu := newTestWireSurface()

	s := mapsync.New(surface, mapsync.Config{FocusZoom: 17})
	ready, err := s.Mount()
	require.NoError(t, err)
	require.True(t, ready)

	require.NoError(t, s.Reconcile(wireTestLocations(2)))

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, *sent, 3)
	assert.Equal(t, "init", (*sent)[0].Type)
	assert.Equal(t, "marker_add", (*sent)[1].Type)
	assert.Equal(t, "loc-0", (*sent)[1].ID)
	assert.Equal(t, "🏫", (*sent)[1].Glyph)
	assert.Equal(t, "marker_add", (*sent)[2].Type)
}

func TestWireSurfaceMarkerClickRoutesToHandler(t *testing.T) {
	surface, _, _ := newTestWireSurface()

	var selected string
	s := mapsync.New(surface, mapsync.Config{
		OnSelect: func(loc location.Location) { selected = loc.ID },
	})
	_, err := s.Mount()
	require.NoError(t, err)
	require.NoError(t, s.Reconcile(wireTestLocations(1)))

	surface.markerClicked("loc-0")
	assert.Equal(t, "loc-0", selected)

	// Unknown ids are dropped.
	surface.markerClicked("loc-99")
	assert.Equal(t, "loc-0", selected)
}

// The work loop delivers clicks while the read pump tears the session
// down on disconnect, so click routing and marker removal race by
// construction. Run with -race.
func TestWireSurfaceClickDuringTeardown(t *testing.T) {
	surface, _, _ := newTestWireSurface()

	s := mapsync.New(surface, mapsync.Config{
		OnSelect: func(location.Location) {},
	})
	_, err := s.Mount()
	require.NoError(t, err)
	require.NoError(t, s.Reconcile(wireTestLocations(8)))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			surface.markerClicked(fmt.Sprintf("loc-%d", i%8))
			surface.handleClick(20.355, 85.819)
		}
	}()

	go func() {
		defer wg.Done()
		s.Close()
	}()

	wg.Wait()

	assert.Empty(t, s.MarkerIDs())
	// Clicks arriving after teardown resolve nothing and are dropped.
	assert.NotPanics(t, func() { surface.markerClicked("loc-0") })
}
