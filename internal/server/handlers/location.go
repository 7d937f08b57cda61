// internal/server/handlers/location.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusnav/internal/domain/location"
)

// LocationHandler handles location-related HTTP requests
type LocationHandler struct {
	service location.Service
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service location.Service) *LocationHandler {
	return &LocationHandler{
		service: service,
	}
}

// ListLocations returns locations matching the query parameters
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	var filter location.Filter

	filter.NameSubstring = r.URL.Query().Get("q")

	if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
		category, err := location.ParseCategory(categoryStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid category", err)
			return
		}
		filter.Category = &category
	}

	locations, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list locations", err)
		return
	}

	if locations == nil {
		locations = []location.Location{}
	}

	respondWithJSON(w, http.StatusOK, locations)
}

// GetLocation returns a specific location by ID
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing location ID", nil)
		return
	}

	loc, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Location not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get location", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, loc)
}

// CreateLocation creates a new location
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var draft location.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loc, err := h.service.Create(r.Context(), draft)
	if err != nil {
		if isValidationError(err) {
			respondWithError(w, http.StatusBadRequest, "Invalid location", err)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create location", err)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, loc)
}

// UpdateLocation updates an existing location
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing location ID", nil)
		return
	}

	var draft location.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loc, err := h.service.Update(r.Context(), id, draft)
	if err != nil {
		switch {
		case errors.Is(err, location.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Location not found", nil)
		case isValidationError(err):
			respondWithError(w, http.StatusBadRequest, "Invalid location", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update location", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, loc)
}

// DeleteLocation deletes a location
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing location ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, location.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Location not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete location", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCategories returns the category descriptor table
func (h *LocationHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	type categoryEntry struct {
		Value location.Category `json:"value"`
		Label string            `json:"label"`
		Glyph string            `json:"glyph"`
		Color string            `json:"color"`
	}

	entries := make([]categoryEntry, 0, len(location.Categories))
	for _, c := range location.Categories {
		desc := c.Descriptor()
		entries = append(entries, categoryEntry{
			Value: c,
			Label: desc.Label,
			Glyph: desc.Glyph,
			Color: desc.Color,
		})
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func isValidationError(err error) bool {
	return errors.Is(err, location.ErrNameRequired) ||
		errors.Is(err, location.ErrInvalidCategory)
}
