// internal/domain/location/service.go

package location

import "context"

// Store defines the persistence contract for locations. The running
// application never mutates a Location in place: every change goes
// through a mutation here followed by a fresh List.
type Store interface {
	// List returns locations matching the filter, ordered by name.
	List(ctx context.Context, filter Filter) ([]Location, error)

	// Get returns a location by ID.
	Get(ctx context.Context, id string) (*Location, error)

	// Create inserts a new location and returns it with its assigned
	// ID and timestamps.
	Create(ctx context.Context, draft Draft) (*Location, error)

	// Update replaces the client-writable fields of a location.
	Update(ctx context.Context, id string, draft Draft) (*Location, error)

	// Delete removes a location by ID.
	Delete(ctx context.Context, id string) error
}

// Service defines the directory operations exposed to transports.
type Service interface {
	List(ctx context.Context, filter Filter) ([]Location, error)
	Get(ctx context.Context, id string) (*Location, error)
	Create(ctx context.Context, draft Draft) (*Location, error)
	Update(ctx context.Context, id string, draft Draft) (*Location, error)
	Delete(ctx context.Context, id string) error

	// Export returns the full unfiltered list.
	Export(ctx context.Context) ([]Location, error)

	// Import creates the given drafts one at a time, in order.
	Import(ctx context.Context, drafts []Draft) (ImportReport, error)
}

// ImportReport accounts for an import run.
type ImportReport struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
