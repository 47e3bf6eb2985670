package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nvallens/studydeck-api/internal/api/shared"
	"github.com/nvallens/studydeck-api/internal/service"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// RecordReview handles POST /sets/{setID}/cards/{cardID}/review requests.
func (h *ReviewHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}
	cardID, err := getPathUUID(r, "cardID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req RecordReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	progress, err := h.reviews.RecordReview(r.Context(), setID, cardID, *req.Correct)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewProgressResponse{
		FlashcardID:    cardID.String(),
		TimesReviewed:  progress.TimesReviewed,
		TimesCorrect:   progress.TimesCorrect,
		TimesIncorrect: progress.TimesIncorrect,
		Mastered:       progress.Mastered,
		LastReviewed:   progress.LastReviewed,
	})
}

// GetReviewQueue handles GET /sets/{setID}/review-queue requests.
// An optional "limit" query parameter caps the number of cards returned.
func (h *ReviewHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	cards, err := h.reviews.GetNeedingReview(r.Context(), setID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// GetProgress handles GET /sets/{setID}/progress requests.
func (h *ReviewHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	progress, err := h.reviews.GetProgress(r.Context(), setID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}
