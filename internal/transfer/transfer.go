// internal/transfer/transfer.go

// Package transfer encodes and decodes the location exchange format: a
// pretty-printed JSON array of location records. Exports carry every
// field including server-assigned id and timestamps; imports consume
// only the client-writable fields and always create new records.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"campusnav/internal/domain/location"
)

// ErrNotAList is returned when the top-level value of an import is not
// a JSON array. This aborts the whole import; nothing is created.
var ErrNotAList = errors.New("import file must contain a JSON array of locations")

// FileName returns the fixed export filename for a deployment.
func FileName(orgName string) string {
	return fmt.Sprintf("%s-locations.json", orgName)
}

// Encode writes the full location list as a pretty-printed JSON array.
func Encode(w io.Writer, locations []location.Location) error {
	if locations == nil {
		locations = []location.Location{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(locations)
}

// importedRecord mirrors the export shape. Pointers distinguish absent
// from zero so the required-field check matches field presence, not
// value truthiness; id and timestamps are ignored on import.
type importedRecord struct {
	Name        *string  `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	PhotoURL    *string  `json:"photo_url"`
}

// Decode parses an import document. Records missing any of the four
// required fields (name, lat, lng, category) are skipped and counted;
// malformed top-level input fails the whole decode.
func Decode(r io.Reader) ([]location.Draft, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}

	var records []importedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, ErrNotAList
	}

	var drafts []location.Draft
	skipped := 0

	for _, rec := range records {
		if rec.Name == nil || rec.Lat == nil || rec.Lng == nil || rec.Category == nil {
			skipped++
			continue
		}

		category, err := location.ParseCategory(*rec.Category)
		if err != nil {
			skipped++
			continue
		}

		drafts = append(drafts, location.Draft{
			Name:        *rec.Name,
			Lat:         *rec.Lat,
			Lng:         *rec.Lng,
			Category:    category,
			Description: rec.Description,
			PhotoURL:    rec.PhotoURL,
		})
	}

	return drafts, skipped, nil
}
