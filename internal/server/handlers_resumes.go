package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/render"
	"github.com/jonathan/resume-forge/internal/server/middleware"
	"github.com/jonathan/resume-forge/internal/types"
)

// handleGenerateResume runs the full pipeline for a stored job posting:
// content generation, template fill, PDF and DOCX rendering, persistence.
// Nothing is persisted unless every step succeeds.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req types.GenerateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profileRecord, err := s.db.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if profileRecord == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found; upload a profile first")
		return
	}
	profile, err := profileRecord.DecodeProfile()
	if err != nil {
		s.serviceError(w, err)
		return
	}

	jobRecord, err := s.db.GetJobPosting(r.Context(), req.JobID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if jobRecord == nil || (jobRecord.UserID != nil && *jobRecord.UserID != userID) {
		s.errorResponse(w, http.StatusNotFound, "job posting not found")
		return
	}
	job := jobRecord.ToPosting()

	tmpl := s.registry.BestForJob(job)
	if req.TemplateID != "" {
		tmpl = s.registry.Get(req.TemplateID)
	}
	if tmpl == nil {
		s.errorResponse(w, http.StatusNotFound, "template not found")
		return
	}

	result, err := s.generator.Generate(r.Context(), profile, job)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	data := render.NewData(profile, result.Content)
	html, err := render.FillHTML(tmpl, data)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	pdfBytes, err := s.renderer.RenderPDF(r.Context(), html)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	stem := path.Join(userID.String(), uuid.New().String())
	pdfPath, err := s.store.Save(stem+".pdf", pdfBytes)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	docxPath := stem + ".docx"
	docxAbs, err := s.store.Path(docxPath)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if err := s.renderer.RenderDOCX(data, docxAbs); err != nil {
		s.serviceError(w, err)
		return
	}

	matchScore := 0.0
	if result.Match != nil {
		matchScore = result.Match.OverallMatchScore
	}

	record, err := s.db.CreateResume(r.Context(), &db.ResumeInput{
		UserID:       userID,
		JobPostingID: &req.JobID,
		TemplateID:   tmpl.ID,
		Content:      result.Content,
		MatchScore:   matchScore,
		QualityScore: result.QualityScore,
		PDFPath:      pdfPath,
		DOCXPath:     docxPath,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"resume":      record,
		"used_legacy": result.UsedLegacy,
		"iterations":  result.Iterations,
	})
}

// handleListResumes returns the caller's generation history, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resumes, err := s.db.ListResumesByUser(r.Context(), userID, listLimit(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleGetResume returns a single stored resume.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleDownloadResume streams a rendered artifact. The format query
// parameter selects pdf (default) or docx.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	record, ok := s.ownedResume(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}

	var artifactPath, contentType string
	switch format {
	case "pdf":
		artifactPath = record.PDFPath
		contentType = "application/pdf"
	case "docx":
		artifactPath = record.DOCXPath
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		s.errorResponse(w, http.StatusBadRequest, "format must be pdf or docx")
		return
	}

	if artifactPath == "" {
		s.errorResponse(w, http.StatusNotFound, "no rendered "+format+" for this resume")
		return
	}

	f, err := s.store.Open(artifactPath)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "artifact no longer available")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "resume."+format))
	if _, err := io.Copy(w, f); err != nil {
		// Headers are already written; nothing left to do but log
		log.Printf("Error streaming artifact: %v", err)
	}
}

// handleListTemplates lists available templates. With a job_id query
// parameter the list includes per-template affinity scores for that job.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid job ID")
			return
		}
		record, err := s.db.GetJobPosting(r.Context(), jobID)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		if record == nil {
			s.errorResponse(w, http.StatusNotFound, "job posting not found")
			return
		}

		ranked := s.registry.RankForJob(record.ToPosting())
		out := make([]map[string]any, 0, len(ranked))
		for _, st := range ranked {
			out = append(out, map[string]any{
				"id":       st.ID,
				"name":     st.Name,
				"category": st.Category,
				"score":    st.Score,
			})
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"templates": out})
		return
	}

	list := s.registry.List()
	out := make([]map[string]any, 0, len(list))
	for _, t := range list {
		out = append(out, map[string]any{
			"id":       t.ID,
			"name":     t.Name,
			"category": t.Category,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": out})
}

// ownedResume loads the resume from the path ID and enforces ownership.
// Writes the error response itself when the lookup fails.
func (s *Server) ownedResume(w http.ResponseWriter, r *http.Request) (*db.Resume, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume ID")
		return nil, false
	}

	record, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return nil, false
	}
	if record == nil || record.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return nil, false
	}
	return record, true
}
