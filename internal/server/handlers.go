package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phantomsec/phantom/internal/breach"
	"github.com/phantomsec/phantom/internal/detect"
	"github.com/phantomsec/phantom/internal/suggest"
	"github.com/phantomsec/phantom/internal/types"
)

// breachEntry reports the breach and strength evaluation of one
// password found during redaction.
type breachEntry struct {
	PasswordMasked string           `json:"password_masked"`
	BreachStatus   breach.Analysis  `json:"breach_status"`
	Strength       suggest.Analysis `json:"strength"`
	Suggestions    []string         `json:"suggestions"`
}

type analyzeResponse struct {
	Success                bool                    `json:"success"`
	TraceID                string                  `json:"trace_id"`
	OriginalContent        string                  `json:"original_content"`
	RedactedContent        string                  `json:"redacted_content"`
	SafeData               string                  `json:"safe_data"`
	TraceSteps             []types.TraceStep       `json:"trace_steps"`
	RedactionSummary       types.RedactionSummary  `json:"redaction_summary"`
	RedactionDetails       []types.RedactionRecord `json:"redaction_details"`
	BreachAnalysis         []breachEntry           `json:"breach_analysis"`
	PasswordSuggestions    []suggest.Suggestion    `json:"password_suggestions"`
	InterceptionSuccessful bool                    `json:"interception_successful"`
}

// handleAnalyze runs the full interception over submitted content and
// augments the trace with breach lookups for any redacted passwords.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	raw, ok := body["content"]
	if !ok {
		writeError(w, http.StatusBadRequest, "No content provided")
		return
	}

	// Clients sometimes send parsed JSON instead of a string; coerce
	// rather than reject so the scan still runs.
	content := detect.Normalize(raw)
	result := s.interceptor.Process(content)

	breachResults := []breachEntry{}
	for _, rec := range result.RedactionDetails {
		if rec.Kind != "password" {
			continue
		}
		pwd := rec.Original
		breachResults = append(breachResults, breachEntry{
			PasswordMasked: breach.MaskPassword(pwd, 2),
			BreachStatus:   s.breach.Analyze(r.Context(), pwd),
			Strength:       suggest.AnalyzeStrength(pwd),
			Suggestions:    suggest.Improvements(pwd),
		})
	}

	suggestions := []suggest.Suggestion{}
	if len(breachResults) > 0 {
		alts, err := suggest.Alternatives()
		if err != nil {
			s.logger.Error("suggestion generation failed", "error", err)
		} else {
			suggestions = alts
		}
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:                true,
		TraceID:                result.TraceID,
		OriginalContent:        result.OriginalContent,
		RedactedContent:        result.RedactedContent,
		SafeData:               result.RedactedContent,
		TraceSteps:             result.TraceSteps,
		RedactionSummary:       result.RedactionSummary,
		RedactionDetails:       result.RedactionDetails,
		BreachAnalysis:         breachResults,
		PasswordSuggestions:    suggestions,
		InterceptionSuccessful: result.InterceptionSuccessful,
	})
}

// handleCheckBreach evaluates a single password: breach exposure,
// strength score, and a full recommendation.
func (s *Server) handleCheckBreach(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password == nil {
		writeError(w, http.StatusBadRequest, "No password provided")
		return
	}
	password := *body.Password

	rec, err := suggest.Recommend(password)
	if err != nil {
		s.logger.Error("recommendation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"breach_status":     s.breach.Analyze(r.Context(), password),
		"strength_analysis": suggest.AnalyzeStrength(password),
		"recommendation":    rec,
	})
}

// handleTraceHistory returns the most recent traces plus aggregate
// statistics.
func (s *Server) handleTraceHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	store := s.interceptor.Store()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"traces":     store.Recent(limit),
		"statistics": store.Stats(),
	})
}

func (s *Server) handleTraceDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "traceID")
	t, ok := s.interceptor.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Trace not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"trace":   t,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "Phantom Credential Checker",
		"modules": map[string]bool{
			"detector":    true,
			"redactor":    true,
			"interceptor": true,
			"breach":      true,
			"suggester":   true,
		},
	})
}
