package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
)

type analyzeRequest struct {
	Content  string         `json:"content"`
	Title    string         `json:"title,omitempty"`
	Author   string         `json:"author,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type batchAnalyzeRequest struct {
	Messages []analyzeRequest `json:"messages"`
	FailFast bool             `json:"fail_fast,omitempty"`
}

type batchSlot struct {
	Result *core.DetectionResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

type configUpdateRequest struct {
	BaseURL     *string  `json:"base_url,omitempty"`
	APIKey      *string  `json:"api_key,omitempty"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Timeout     *string  `json:"timeout,omitempty"`
}

type patternUpdateRequest struct {
	Description *string   `json:"description,omitempty"`
	Indicators  *[]string `json:"indicators,omitempty"`
	Severity    *string   `json:"severity,omitempty"`
	Examples    *[]string `json:"examples,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeAnalysisError maps the detection error taxonomy onto HTTP statuses.
// Upstream and format failures surface as 502 so callers can tell them from
// this service's own errors.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var transportErr *core.TransportError
	var upstreamErr *core.UpstreamError
	var formatErr *core.ResponseFormatError
	switch {
	case errors.As(err, &transportErr), errors.As(err, &upstreamErr), errors.As(err, &formatErr):
		s.writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (r *analyzeRequest) toMessage(s *Server) *core.Message {
	maxBody := s.cfg.GetLLM().MaxBodySize
	return &core.Message{
		Content:  s.textProc.Prepare(r.Content, maxBody),
		Title:    r.Title,
		Author:   r.Author,
		Metadata: r.Metadata,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	msg := req.toMessage(s)
	if err := msg.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.detector.Analyze(r.Context(), msg)
	if err != nil {
		s.logger.Error("Analysis failed", zap.Error(err))
		s.writeAnalysisError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		s.writeError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	msgs := make([]core.Message, len(req.Messages))
	for i := range req.Messages {
		msgs[i] = *req.Messages[i].toMessage(s)
	}

	results, err := s.detector.AnalyzeBatch(r.Context(), msgs, &core.BatchOptions{FailFast: req.FailFast})
	if err != nil {
		s.logger.Error("Batch analysis aborted", zap.Error(err))
		s.writeAnalysisError(w, err)
		return
	}

	slots := make([]batchSlot, len(results))
	for i, res := range results {
		if res.Err != nil {
			slots[i] = batchSlot{Error: res.Err.Error()}
		} else {
			slots[i] = batchSlot{Result: res.Result}
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": slots})
}

// maskedConfig is the config view with the credential hidden.
func (s *Server) maskedConfig() map[string]any {
	openaiCfg := s.cfg.GetOpenAI()
	apiKey := ""
	if openaiCfg.APIKey != "" {
		apiKey = "***configured***"
	}
	return map[string]any{
		"provider":    s.cfg.GetLLM().Provider,
		"base_url":    openaiCfg.BaseURL,
		"api_key":     apiKey,
		"model":       openaiCfg.Model,
		"temperature": openaiCfg.Temperature,
		"max_tokens":  openaiCfg.MaxTokens,
		"timeout":     openaiCfg.Timeout,
	}
}

func (s *Server) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.maskedConfig())
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req configUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Snapshot the keys being changed so a rejected update leaves the
	// configuration untouched.
	prev := map[string]any{
		"openai.base_url":    s.cfg.GetString("openai.base_url"),
		"openai.api_key":     s.cfg.GetString("openai.api_key"),
		"openai.model":       s.cfg.GetString("openai.model"),
		"openai.temperature": s.cfg.GetFloat64("openai.temperature"),
		"openai.max_tokens":  s.cfg.GetInt("openai.max_tokens"),
		"openai.timeout":     s.cfg.GetString("openai.timeout"),
	}

	if req.BaseURL != nil {
		s.cfg.Set("openai.base_url", *req.BaseURL)
	}
	if req.APIKey != nil {
		s.cfg.Set("openai.api_key", *req.APIKey)
	}
	if req.Model != nil {
		s.cfg.Set("openai.model", *req.Model)
	}
	if req.Temperature != nil {
		s.cfg.Set("openai.temperature", *req.Temperature)
	}
	if req.MaxTokens != nil {
		s.cfg.Set("openai.max_tokens", *req.MaxTokens)
	}
	if req.Timeout != nil {
		s.cfg.Set("openai.timeout", *req.Timeout)
	}

	client, err := s.llmFactory.CreateCompletionClient()
	if err != nil {
		for key, value := range prev {
			s.cfg.Set(key, value)
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if prev := s.detector.SetCompletionClient(client); prev != nil {
		if err := prev.Close(); err != nil {
			s.logger.Warn("Failed to close replaced LLM client", zap.Error(err))
		}
	}
	s.logger.Info("LLM configuration updated")

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Configuration updated",
		"config":  s.maskedConfig(),
	})
}

func (s *Server) handleListPatterns(w http.ResponseWriter, _ *http.Request) {
	patterns := s.detector.Patterns()
	if patterns == nil {
		patterns = []core.ScamPattern{}
	}
	s.writeJSON(w, http.StatusOK, patterns)
}

func (s *Server) handleGetPattern(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	pattern, ok := s.detector.Catalog().Get(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "pattern not found")
		return
	}
	s.writeJSON(w, http.StatusOK, pattern)
}

func (s *Server) handleCreatePattern(w http.ResponseWriter, r *http.Request) {
	var pattern core.ScamPattern
	if err := json.NewDecoder(r.Body).Decode(&pattern); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.detector.AddPattern(pattern); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, _ := s.detector.Catalog().Get(pattern.Name)
	if err := s.store.Put(r.Context(), stored); err != nil {
		s.logger.Error("Failed to persist pattern", zap.String("name", pattern.Name), zap.Error(err))
	}
	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdatePattern(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	existing, ok := s.detector.Catalog().Get(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "pattern not found")
		return
	}

	var req patternUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Indicators != nil {
		existing.Indicators = *req.Indicators
	}
	if req.Examples != nil {
		existing.Examples = *req.Examples
	}
	if req.Severity != nil {
		level, err := core.ParseRiskLevel(*req.Severity)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		existing.Severity = level
	}

	if err := s.detector.Catalog().Update(existing); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Put(r.Context(), existing); err != nil {
		s.logger.Error("Failed to persist pattern", zap.String("name", name), zap.Error(err))
	}
	s.writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeletePattern(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.detector.RemovePattern(name) {
		s.writeError(w, http.StatusNotFound, "pattern not found")
		return
	}
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.logger.Error("Failed to delete persisted pattern", zap.String("name", name), zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportPatterns(w http.ResponseWriter, _ *http.Request) {
	data, err := s.detector.Catalog().Export()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="scam_patterns.json"`)
	w.Write(data)
}

// handleResetPatterns discards the catalog and reseeds it with the built-in
// library.
func (s *Server) handleResetPatterns(w http.ResponseWriter, r *http.Request) {
	s.detector.ClearPatterns()
	if err := s.detector.AddPatterns(core.CommonPatterns()); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.ReplaceAll(r.Context(), s.detector.Patterns()); err != nil {
		s.logger.Error("Failed to persist reset patterns", zap.Error(err))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Patterns reset to defaults",
		"patterns": s.detector.Catalog().Len(),
	})
}

func (s *Server) handleImportPatterns(w http.ResponseWriter, r *http.Request) {
	mode := core.ImportMerge
	if r.URL.Query().Get("mode") == "replace" {
		mode = core.ImportReplace
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	skipped, err := s.detector.Catalog().Import(data, mode)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.ReplaceAll(r.Context(), s.detector.Patterns()); err != nil {
		s.logger.Error("Failed to persist imported patterns", zap.Error(err))
	}
	if skipped == nil {
		skipped = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"imported": s.detector.Catalog().Len(),
		"skipped":  skipped,
	})
}
