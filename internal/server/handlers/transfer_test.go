package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/internal/domain/location"
)

func newTransferRouter(dir *fakeDirectory) *chi.Mux {
	h := NewTransferHandler(dir, "kiit")
	r := chi.NewRouter()
	r.Get("/locations/export", h.ExportLocations)
	r.Post("/locations/import", h.ImportLocations)
	return r
}

func TestExportLocations(t *testing.T) {
	dir := newFakeDirectory()
	dir.add(t, "Central Library", location.CategoryAcademic)
	dir.add(t, "Food Court", location.CategoryFood)

	router := newTransferRouter(dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="kiit-locations.json"`,
		rec.Header().Get("Content-Disposition"))

	var got []location.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestImportLocationsMixedRecords(t *testing.T) {
	dir := newFakeDirectory()
	router := newTransferRouter(dir)

	body := `[
		{"name": "Library", "lat": 20.35, "lng": 85.82, "category": "academic"},
		{"name": "No position", "category": "food"},
		{"name": "Clinic", "lat": 20.357, "lng": 85.812, "category": "medical"}
	]`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/locations/import", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var report location.ImportReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, dir.locations, 2)
}

func TestImportLocationsRejectsNonList(t *testing.T) {
	dir := newFakeDirectory()
	router := newTransferRouter(dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/locations/import",
		strings.NewReader(`{"name": "Library"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dir.locations, "a malformed import must create nothing")
	assert.Zero(t, dir.creates)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "invalid JSON format")
}

func TestExportImportRoundTripThroughAPI(t *testing.T) {
	source := newFakeDirectory()
	desc := "Main reading hall"
	_, err := source.Create(context.Background(), location.Draft{
		Name: "Library", Lat: 20.35, Lng: 85.82,
		Category: location.CategoryAcademic, Description: &desc,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	newTransferRouter(source).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/locations/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	target := newFakeDirectory()
	importRec := httptest.NewRecorder()
	newTransferRouter(target).ServeHTTP(importRec,
		httptest.NewRequest(http.MethodPost, "/locations/import", rec.Body))
	require.Equal(t, http.StatusOK, importRec.Code)

	imported, err := target.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, imported, 1)

	assert.Equal(t, "Library", imported[0].Name)
	assert.Equal(t, 20.35, imported[0].Lat)
	assert.Equal(t, 85.82, imported[0].Lng)
	assert.Equal(t, location.CategoryAcademic, imported[0].Category)
	require.NotNil(t, imported[0].Description)
	assert.Equal(t, desc, *imported[0].Description)
}
