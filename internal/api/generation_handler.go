package api

import (
	"log/slog"
	"net/http"

	"github.com/nvallens/studydeck-api/internal/api/shared"
	"github.com/nvallens/studydeck-api/internal/generation"
)

// GenerationHandler handles LLM-backed flashcard generation requests.
type GenerationHandler struct {
	generator *generation.Service
	logger    *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generator *generation.Service, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "generation_handler")),
	}
}

// Generate handles POST /sets/{setID}/generate requests. The generation
// call can take a while; the request context carries the deadline.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	cards, err := h.generator.GenerateAndAdd(r.Context(), setID, req.ContextText, req.NumCards)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cardsToResponse(cards))
}
