// internal/domain/location/model.go

package location

import (
	"errors"
	"strings"
	"time"

	"campusnav/internal/domain/geo"
)

// Category classifies a point of interest. The set is closed: the five
// values below are the only valid ones, and Descriptors must stay in
// lockstep with them.
type Category string

const (
	CategoryAcademic Category = "academic"
	CategoryHostel   Category = "hostel"
	CategoryFood     Category = "food"
	CategoryMedical  Category = "medical"
	CategoryOther    Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryAcademic,
	CategoryHostel,
	CategoryFood,
	CategoryMedical,
	CategoryOther,
}

// Descriptor holds the presentation attributes for a category.
type Descriptor struct {
	Label string
	Glyph string
	Color string
}

// Descriptors is the single source of truth for category presentation.
// Every Category constant has exactly one entry here; the lockstep is
// enforced by tests.
var Descriptors = map[Category]Descriptor{
	CategoryAcademic: {Label: "Academic", Glyph: "🏫", Color: "academic"},
	CategoryHostel:   {Label: "Hostel", Glyph: "🏠", Color: "hostel"},
	CategoryFood:     {Label: "Food", Glyph: "🍽️", Color: "food"},
	CategoryMedical:  {Label: "Medical", Glyph: "🏥", Color: "medical"},
	CategoryOther:    {Label: "Other", Glyph: "🌟", Color: "other"},
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, ok := Descriptors[c]
	return ok
}

// Descriptor returns the presentation attributes for c.
func (c Category) Descriptor() Descriptor {
	return Descriptors[c]
}

// ParseCategory converts a raw string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Location is a named, geocoded point of interest. IDs are opaque and
// stable for the record's lifetime; timestamps are assigned by the
// store and never written by clients.
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Category    Category  `json:"category"`
	Description *string   `json:"description"`
	PhotoURL    *string   `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Position returns the location's coordinate pair.
func (l Location) Position() geo.LatLng {
	return geo.LatLng{Lat: l.Lat, Lng: l.Lng}
}

// Draft carries the client-supplied fields of a location for create and
// update calls. Optional fields are pointers: nil means absent.
type Draft struct {
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Category    Category `json:"category"`
	Description *string  `json:"description"`
	PhotoURL    *string  `json:"photo_url"`
}

// Normalize trims the name and converts empty optional fields to
// explicit absence. It is applied before validation and before any
// store call.
func (d *Draft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = normalizeOptional(d.Description)
	d.PhotoURL = normalizeOptional(d.PhotoURL)
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Validate checks a normalized draft.
func (d Draft) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Filter selects locations by optional case-insensitive name substring
// and optional exact category. Results are always ordered by name.
type Filter struct {
	NameSubstring string
	Category      *Category
}

// Common errors
var (
	ErrNotFound        = errors.New("location not found")
	ErrNameRequired    = errors.New("location name is required")
	ErrInvalidCategory = errors.New("invalid location category")
)
