package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/infrastructure/ai"
	"github.com/doeshing/wai-go/internal/ports"
)

type generateRequest struct {
	Text           string  `json:"text"`
	Mode           string  `json:"mode"`
	TargetLanguage *string `json:"targetLanguage"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ServiceHealth{Status: "ok", Model: s.provider.Model().Name})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no text provided"})
		return
	}

	payload := toPayload(req)
	prompt, err := ai.BuildPrompt(payload)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	reqLog := s.log.With(zap.String("request_id", chimiddleware.GetReqID(r.Context())))
	reqLog.Info("processing request",
		zap.String("mode", string(payload.Mode)),
		zap.Int("chars", utf8.RuneCountInString(payload.Text)),
	)

	resp, err := s.provider.Generate(r.Context(), ports.ProviderRequest{
		Prompt: prompt,
		Params: s.params(payload.Mode),
	})
	if err != nil {
		reqLog.Error("provider failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream model error: " + err.Error()})
		return
	}

	text := ai.StripMarker(payload.Mode, resp.Text)
	reqLog.Info("generated", zap.Int("chars", utf8.RuneCountInString(text)))

	writeJSON(w, http.StatusOK, domain.GenerateResponse{
		GeneratedText: &text,
		Stats: &domain.GenerateStats{
			InputLength:  utf8.RuneCountInString(payload.Text),
			OutputLength: utf8.RuneCountInString(text),
			Mode:         payload.Mode,
		},
	})
}

// toPayload is lenient: a missing mode means improve, an unknown mode is kept
// verbatim so the prompt falls back to the raw text.
func toPayload(req generateRequest) domain.RequestPayload {
	mode := domain.ModeImprove
	if raw := strings.TrimSpace(req.Mode); raw != "" {
		if parsed, err := domain.ParseMode(raw); err == nil {
			mode = parsed
		} else {
			mode = domain.Mode(raw)
		}
	}
	payload := domain.RequestPayload{Text: req.Text, Mode: mode}
	if req.TargetLanguage != nil && mode.RequiresLanguage() {
		lang := domain.TargetLanguage(*req.TargetLanguage)
		if parsed, err := domain.ParseLanguage(*req.TargetLanguage); err == nil {
			lang = parsed
		}
		payload.TargetLanguage = &lang
	}
	return payload
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
