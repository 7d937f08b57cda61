// internal/service/directory/service.go

package directory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campusnav/internal/adapter/events"
	"campusnav/internal/domain/location"
)

// Service implements the location directory. All writes go through the
// store and are followed by a change event on the bus; readers are
// expected to re-query rather than patch local state.
type Service struct {
	store  location.Store
	events events.Publisher
	logger *zap.Logger
}

// NewService creates a new directory service
func NewService(store location.Store, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		events: publisher,
		logger: logger,
	}
}

// List returns locations matching the filter, ordered by name
func (s *Service) List(ctx context.Context, filter location.Filter) ([]location.Location, error) {
	return s.store.List(ctx, filter)
}

// Get returns a location by ID
func (s *Service) Get(ctx context.Context, id string) (*location.Location, error) {
	return s.store.Get(ctx, id)
}

// Create validates and creates a new location
func (s *Service) Create(ctx context.Context, draft location.Draft) (*location.Location, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.store.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, "create", loc.ID)

	s.logger.Info("location created",
		zap.String("id", loc.ID),
		zap.String("name", loc.Name),
		zap.String("category", string(loc.Category)))

	return loc, nil
}

// Update validates and updates an existing location
func (s *Service) Update(ctx context.Context, id string, draft location.Draft) (*location.Location, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.store.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, "update", loc.ID)

	s.logger.Info("location updated",
		zap.String("id", loc.ID),
		zap.String("name", loc.Name))

	return loc, nil
}

// Delete removes a location
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.publishChange(ctx, "delete", id)

	s.logger.Info("location deleted", zap.String("id", id))

	return nil
}

// Export returns the full unfiltered location list
func (s *Service) Export(ctx context.Context) ([]location.Location, error) {
	return s.store.List(ctx, location.Filter{})
}

// Import creates the given drafts one at a time, in order. Sequential
// issue is a deliberate throttle: import latency scales linearly with
// record count instead of bursting writes at the store. Drafts that
// fail validation are skipped and counted, never fatal.
func (s *Service) Import(ctx context.Context, drafts []location.Draft) (location.ImportReport, error) {
	var report location.ImportReport

	for _, draft := range drafts {
		draft.Normalize()
		if err := draft.Validate(); err != nil {
			report.Skipped++
			continue
		}

		if _, err := s.store.Create(ctx, draft); err != nil {
			return report, err
		}
		report.Created++
	}

	if report.Created > 0 {
		s.publishChange(ctx, "import", "")
	}

	s.logger.Info("import finished",
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped))

	return report, nil
}

// publishChange emits an invalidation event. A publish failure is not
// fatal: the mutation is already committed and listeners converge on
// their next query.
func (s *Service) publishChange(ctx context.Context, op, id string) {
	if s.events == nil {
		return
	}

	event := events.ChangeEvent{
		Op: op,
		ID: id,
		At: time.Now(),
	}

	if err := s.events.PublishLocationsChanged(ctx, event); err != nil {
		s.logger.Warn("failed to publish change event",
			zap.String("op", op),
			zap.Error(err))
	}
}
