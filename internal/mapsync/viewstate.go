// internal/mapsync/viewstate.go

package mapsync

import (
	"sync"

	"campusnav/internal/domain/location"
)

// ViewState holds the four independent pieces of client view state:
// search text, category filter, current selection and sidebar
// visibility. Changing search or category triggers a fresh query via
// the callback; a new query result never clears the selection, so an
// open detail card survives a broadened filter. A selection filtered
// out of the current list simply has no marker (the synchronizer's
// no-op rule).
type ViewState struct {
	mu          sync.Mutex
	search      string
	category    *location.Category
	selected    *location.Location
	sidebarOpen bool

	// onQueryChanged fires after search or category changes.
	onQueryChanged func()
}

// NewViewState creates a view state controller. onQueryChanged may be
// nil.
func NewViewState(onQueryChanged func()) *ViewState {
	return &ViewState{
		onQueryChanged: onQueryChanged,
	}
}

// SetSearch updates the search text and triggers a re-query.
func (v *ViewState) SetSearch(text string) {
	v.mu.Lock()
	v.search = text
	v.mu.Unlock()

	v.queryChanged()
}

// SetCategory updates the category filter and triggers a re-query.
// A nil category means "all categories".
func (v *ViewState) SetCategory(category *location.Category) {
	v.mu.Lock()
	v.category = category
	v.mu.Unlock()

	v.queryChanged()
}

// Select sets the current selection. nil clears it.
func (v *ViewState) Select(loc *location.Location) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = loc
}

// Selected returns the current selection, or nil.
func (v *ViewState) Selected() *location.Location {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Filter returns the store filter for the current search and category.
func (v *ViewState) Filter() location.Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return location.Filter{
		NameSubstring: v.search,
		Category:      v.category,
	}
}

// SetSidebarOpen toggles sidebar visibility.
func (v *ViewState) SetSidebarOpen(open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sidebarOpen = open
}

// SidebarOpen reports sidebar visibility.
func (v *ViewState) SidebarOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sidebarOpen
}

func (v *ViewState) queryChanged() {
	if v.onQueryChanged != nil {
		v.onQueryChanged()
	}
}
