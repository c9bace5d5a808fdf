package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"alphabetquest/internal/service"
)

// SessionHandler handles practice session HTTP requests
type SessionHandler struct {
	schedulerService *service.SchedulerService
	graderService    *service.GraderService
	sessionService   *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(schedulerService *service.SchedulerService, graderService *service.GraderService, sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		schedulerService: schedulerService,
		graderService:    graderService,
		sessionService:   sessionService,
	}
}

// StartSession builds a new practice batch and records the session
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	childID := queryInt64(r, "child_id")
	mode := r.URL.Query().Get("mode")

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "count must be a positive integer", Field: "count"})
			return
		}
		count = n
	}

	batch, err := h.schedulerService.BuildSession(mode, childID, count)
	if err != nil {
		respondWithError(w, "Error building session", err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

type gradeRequest struct {
	ChildID  int64  `json:"child_id"`
	LetterID int64  `json:"letter_id"`
	Mode     string `json:"mode"`
	Correct  bool   `json:"correct"`
}

// GradeCard records the outcome of a single card
func (h *SessionHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := h.graderService.GradeCard(req.LetterID, req.Mode, req.ChildID, req.Correct)
	if err != nil {
		respondWithError(w, "Error grading card", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type completeRequest struct {
	SessionID    int64 `json:"session_id"`
	TotalCards   int   `json:"total_cards"`
	CorrectCount int   `json:"correct_count"`
}

// CompleteSession stamps a session as finished with its final tallies
func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	session, err := h.sessionService.CompleteSession(req.SessionID, req.TotalCards, req.CorrectCount)
	if err != nil {
		respondWithError(w, "Error completing session", err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// DeleteSession removes an abandoned session row
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid session ID"})
		return
	}
	childID := queryInt64(r, "child_id")

	deleted, err := h.sessionService.DeleteSession(sessionID, childID)
	if err != nil {
		respondWithError(w, "Error deleting session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// queryInt64 parses an integer query parameter, returning 0 when absent or
// malformed so the service layer produces the validation error
func queryInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
