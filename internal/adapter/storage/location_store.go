// internal/adapter/storage/location_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"campusnav/internal/domain/location"
)

// LocationStore implements storage for locations
type LocationStore struct {
	db *pgxpool.Pool
}

// NewLocationStore creates a new location store
func NewLocationStore(db *pgxpool.Pool) *LocationStore {
	return &LocationStore{
		db: db,
	}
}

// List finds locations matching the filter, ordered by name
func (s *LocationStore) List(ctx context.Context, filter location.Filter) ([]location.Location, error) {
	// Build dynamic query
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT
			id, name, lat, lng, category, description, photo_url,
			created_at, updated_at
		FROM locations
		WHERE 1=1
	`)

	args := []interface{}{}
	argIndex := 1

	// Add name substring filter
	if filter.NameSubstring != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argIndex))
		args = append(args, "%"+filter.NameSubstring+"%")
		argIndex++
	}

	// Add category filter
	if filter.Category != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argIndex))
		args = append(args, string(*filter.Category))
		argIndex++
	}

	queryBuilder.WriteString(" ORDER BY name ASC")

	// Execute query
	rows, err := s.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	// Parse results
	var locations []location.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning location: %w", err)
		}
		locations = append(locations, *loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// Get retrieves a location by ID
func (s *LocationStore) Get(ctx context.Context, id string) (*location.Location, error) {
	query := `
		SELECT
			id, name, lat, lng, category, description, photo_url,
			created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	loc, err := scanLocation(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, location.ErrNotFound
		}
		return nil, fmt.Errorf("error querying location: %w", err)
	}

	return loc, nil
}

// Create inserts a new location. The store assigns the ID and both
// timestamps.
func (s *LocationStore) Create(ctx context.Context, draft location.Draft) (*location.Location, error) {
	query := `
		INSERT INTO locations (id, name, lat, lng, category, description, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
			id, name, lat, lng, category, description, photo_url,
			created_at, updated_at
	`

	loc, err := scanLocation(s.db.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		draft.Name,
		draft.Lat,
		draft.Lng,
		string(draft.Category),
		draft.Description,
		draft.PhotoURL,
	))
	if err != nil {
		return nil, fmt.Errorf("error inserting location: %w", err)
	}

	return loc, nil
}

// Update replaces the client-writable fields of a location and bumps
// updated_at.
func (s *LocationStore) Update(ctx context.Context, id string, draft location.Draft) (*location.Location, error) {
	query := `
		UPDATE locations
		SET
			name = $2,
			lat = $3,
			lng = $4,
			category = $5,
			description = $6,
			photo_url = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING
			id, name, lat, lng, category, description, photo_url,
			created_at, updated_at
	`

	loc, err := scanLocation(s.db.QueryRow(
		ctx,
		query,
		id,
		draft.Name,
		draft.Lat,
		draft.Lng,
		string(draft.Category),
		draft.Description,
		draft.PhotoURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, location.ErrNotFound
		}
		return nil, fmt.Errorf("error updating location: %w", err)
	}

	return loc, nil
}

// Delete removes a location by ID
func (s *LocationStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM locations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting location: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return location.ErrNotFound
	}

	return nil
}

// scanLocation scans a single location row
func scanLocation(row pgx.Row) (*location.Location, error) {
	var loc location.Location
	var category string

	err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Lat,
		&loc.Lng,
		&category,
		&loc.Description,
		&loc.PhotoURL,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	loc.Category = location.Category(category)

	return &loc, nil
}
