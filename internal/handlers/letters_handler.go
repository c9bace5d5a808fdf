package handlers

import (
	"net/http"

	"alphabetquest/internal/database"
	"alphabetquest/internal/service"
)

// LettersHandler handles the public letter catalog and health endpoints
type LettersHandler struct {
	catalogService *service.CatalogService
	db             *database.DB
}

// NewLettersHandler creates a new letters handler
func NewLettersHandler(catalogService *service.CatalogService, db *database.DB) *LettersHandler {
	return &LettersHandler{
		catalogService: catalogService,
		db:             db,
	}
}

// ListLetters returns the catalog, optionally filtered by case type
func (h *LettersHandler) ListLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := h.catalogService.ListLetters(r.URL.Query().Get("case_type"))
	if err != nil {
		respondWithError(w, "Error listing letters", err)
		return
	}
	writeJSON(w, http.StatusOK, letters)
}

// Health reports service and database liveness
func (h *LettersHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
