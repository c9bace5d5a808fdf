package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"alphabetquest/internal/service"
)

// AdminHandler handles catalog administration HTTP requests
type AdminHandler struct {
	authService    *service.AuthService
	catalogService *service.CatalogService
	uploadMaxSize  int64
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *service.AuthService, catalogService *service.CatalogService, uploadMaxSize int64) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		catalogService: catalogService,
		uploadMaxSize:  uploadMaxSize,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies the admin password and issues a bearer token
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	token, expiresAt, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			return
		}
		respondWithError(w, "Error issuing admin token", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

// ListLetters returns the upper-case catalog rows for the admin view
func (h *AdminHandler) ListLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := h.catalogService.AdminLetters()
	if err != nil {
		respondWithError(w, "Error listing admin letters", err)
		return
	}
	writeJSON(w, http.StatusOK, letters)
}

// UploadImage accepts a multipart image upload for a letter
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid or oversized upload"})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing image file", Field: "image"})
		return
	}
	defer file.Close()

	imagePath, err := h.catalogService.UploadImage(r.PathValue("letter"), file)
	if err != nil {
		respondWithError(w, "Error uploading letter image", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_path": imagePath})
}

// RemoveImage deletes a letter's uploaded image
func (h *AdminHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.RemoveImage(r.PathValue("letter")); err != nil {
		respondWithError(w, "Error removing letter image", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type wordRequest struct {
	Word string `json:"word"`
}

// SetDisplayWord sets or clears the custom display word for a letter
func (h *AdminHandler) SetDisplayWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	word, err := h.catalogService.SetDisplayWord(r.PathValue("letter"), req.Word)
	if err != nil {
		respondWithError(w, "Error setting display word", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*string{"display_word": word})
}
