package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-forge/internal/server/middleware"
	"github.com/jonathan/resume-forge/internal/types"
)

// handleGetProfile returns the caller's stored profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	record, err := s.db.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}

	profile, err := record.DecodeProfile()
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profile":        profile,
		"last_synced_at": record.LastSyncedAt,
		"updated_at":     record.UpdatedAt,
	})
}

// handlePutProfile replaces the caller's profile wholesale. Partial
// updates are not supported; clients send the complete profile.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := s.db.UpsertProfile(r.Context(), userID, &req.Profile)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profile":    req.Profile,
		"updated_at": record.UpdatedAt,
	})
}
