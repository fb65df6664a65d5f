package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/logger"
)

// HeaderRequestID carries the answer ID on /chatbot responses.
const HeaderRequestID = "X-Request-ID"

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status     string    `json:"status"`
	Labels     int       `json:"labels"`
	Vocabulary int       `json:"vocabulary"`
	Norm       string    `json:"norm"`
	TrainedAt  time.Time `json:"trained_at"`
}

func (s *Server) handleChatbot(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read request body"})
		return
	}

	req, err := domain.ParseAnswerRequest(body)
	if err != nil {
		writeError(w, err)
		return
	}

	answer, err := s.chat.Answer(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(HeaderRequestID, answer.ID)
	writeJSON(w, http.StatusOK, chatResponse{Response: answer.Label})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	model := s.chat.Model()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Labels:     len(model.Labels),
		Vocabulary: model.Vocabulary,
		Norm:       string(model.Norm),
		TrainedAt:  model.TrainedAt.UTC(),
	})
}

// writeError maps domain errors onto status codes. Only validation messages
// reach the client.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if !errors.Is(err, domain.ErrInternal) {
		logger.Error("unexpected error: %v", err)
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}
