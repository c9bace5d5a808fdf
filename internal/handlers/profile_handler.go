package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"alphabetquest/internal/service"
)

// ProfileHandler handles child profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ListProfiles returns all child profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles()
	if err != nil {
		respondWithError(w, "Error listing profiles", err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

type profileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// CreateProfile creates a profile and seeds its progress rows
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	profile, err := h.profileService.CreateProfile(req.Name, req.Avatar)
	if err != nil {
		respondWithError(w, "Error creating profile", err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// UpdateProfile renames a profile or changes its avatar
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid profile ID"})
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	profile, err := h.profileService.UpdateProfile(id, req.Name, req.Avatar)
	if err != nil {
		respondWithError(w, "Error updating profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// DeleteProfile removes a profile and its progress and sessions
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid profile ID"})
		return
	}

	if err := h.profileService.DeleteProfile(id); err != nil {
		respondWithError(w, "Error deleting profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
