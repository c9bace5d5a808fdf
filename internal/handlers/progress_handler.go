package handlers

import (
	"encoding/json"
	"net/http"

	"alphabetquest/internal/service"
)

// ProgressHandler handles progress reporting HTTP requests
type ProgressHandler struct {
	reportService  *service.ReportService
	sessionService *service.SessionService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(reportService *service.ReportService, sessionService *service.SessionService) *ProgressHandler {
	return &ProgressHandler{
		reportService:  reportService,
		sessionService: sessionService,
	}
}

// GetSummary returns status counts, problem letters and recent sessions
func (h *ProgressHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.GetProgressSummary(r.URL.Query().Get("mode"), queryInt64(r, "child_id"))
	if err != nil {
		respondWithError(w, "Error building progress summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetLetters returns the full per-letter progress roster
func (h *ProgressHandler) GetLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := h.reportService.GetProgressLetters(r.URL.Query().Get("mode"), queryInt64(r, "child_id"))
	if err != nil {
		respondWithError(w, "Error listing letter progress", err)
		return
	}
	writeJSON(w, http.StatusOK, letters)
}

type resetRequest struct {
	ChildID int64  `json:"child_id"`
	Mode    string `json:"mode"`
}

// ResetProgress wipes all learning state for a child and mode
func (h *ProgressHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := h.sessionService.ResetProgress(req.Mode, req.ChildID); err != nil {
		respondWithError(w, "Error resetting progress", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
