package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/server/middleware"
	"github.com/jonathan/resume-forge/internal/types"
)

const defaultListLimit = 20
const maxListLimit = 100

// handleScrapeJob scrapes a job posting URL and stores the result.
// A fresh posting for the same URL short-circuits the scrape.
func (s *Server) handleScrapeJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req types.ScrapeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Reuse a recent scrape of the same URL before hitting the network
	if cached, err := s.db.GetFreshJobPostingByURL(r.Context(), req.URL, s.cfg.ScrapeCacheTTL); err == nil && cached != nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"job":    cached,
			"cached": true,
		})
		return
	}

	posting, err := s.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	record, err := s.db.CreateJobPosting(r.Context(), &userID, posting)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"job":    record,
		"cached": false,
	})
}

// handleListJobs returns the caller's scraped job postings, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	jobs, err := s.db.ListJobPostingsByUser(r.Context(), userID, listLimit(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleGetJob returns a single stored job posting.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	record, err := s.db.GetJobPosting(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	// Postings scraped by other users are not visible
	if record == nil || (record.UserID != nil && *record.UserID != userID) {
		s.errorResponse(w, http.StatusNotFound, "job posting not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// listLimit parses the limit query parameter with a sane default and cap.
func listLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
