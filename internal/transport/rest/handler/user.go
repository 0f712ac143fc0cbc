package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tarundeepakjain/Quintz/internal/service"
	"github.com/tarundeepakjain/Quintz/internal/transport/rest/middleware"
)

// UserHandler handles profile endpoints
type UserHandler struct {
	authSvc *service.AuthService
	tracker *service.PerformanceTracker
}

// NewUserHandler creates a new user handler
func NewUserHandler(authSvc *service.AuthService, tracker *service.PerformanceTracker) *UserHandler {
	return &UserHandler{
		authSvc: authSvc,
		tracker: tracker,
	}
}

// Profile handles GET /profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	user, err := h.authSvc.Profile(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	series, err := h.tracker.Series(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	months := map[string]float64{}
	if series != nil {
		months = series.Months
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":        user,
		"performance": months,
	})
}

// EditProfileRequest is the request body for profile edits
type EditProfileRequest struct {
	Name string `json:"name"`
}

// EditProfile handles POST /edit-profile
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req EditProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authSvc.UpdateName(r.Context(), username, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "changes updated successfully"})
}

// ChangePasswordRequest is the request body for password changes
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPass"`
	NewPassword string `json:"newPass"`
}

// ChangePassword handles POST /change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authSvc.ChangePassword(r.Context(), username, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}
