// internal/server/handlers/transfer.go

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"campusnav/internal/domain/location"
	"campusnav/internal/transfer"
)

// TransferHandler handles location import and export
type TransferHandler struct {
	service location.Service
	orgName string
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(service location.Service, orgName string) *TransferHandler {
	return &TransferHandler{
		service: service,
		orgName: orgName,
	}
}

// ExportLocations serializes the full location list as a JSON download
func (h *TransferHandler) ExportLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.Export(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export locations", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", transfer.FileName(h.orgName)))

	if err := transfer.Encode(w, locations); err != nil {
		// Headers are already out; nothing sane to do beyond logging
		// at the middleware layer.
		return
	}
}

// ImportLocations parses an uploaded JSON array and creates its
// records one at a time. A malformed top-level document aborts the
// whole import with a single error; records missing required fields
// are skipped and accounted for in the report.
func (h *TransferHandler) ImportLocations(w http.ResponseWriter, r *http.Request) {
	drafts, skipped, err := transfer.Decode(r.Body)
	if err != nil {
		if errors.Is(err, transfer.ErrNotAList) {
			respondWithError(w, http.StatusBadRequest, "Failed to import: invalid JSON format", nil)
		} else {
			respondWithError(w, http.StatusBadRequest, "Failed to read import file", err)
		}
		return
	}

	report, err := h.service.Import(r.Context(), drafts)
	report.Skipped += skipped
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Import failed partway", err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
