package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nvallens/studydeck-api/internal/api/shared"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/service"
)

// SetHandler handles flashcard-set HTTP requests.
type SetHandler struct {
	sets   service.SetService
	logger *slog.Logger
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(sets service.SetService, logger *slog.Logger) *SetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetHandler{
		sets:   sets,
		logger: logger.With(slog.String("component", "set_handler")),
	}
}

// CreateSet handles POST /sets requests.
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req CreateSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	set, err := h.sets.CreateSet(r.Context(), service.CreateSetParams{
		CourseID:     req.CourseID,
		CourseName:   req.CourseName,
		Title:        req.Title,
		AssignmentID: req.AssignmentID,
		Notes:        req.Notes,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, setToResponse(set))
}

// GetSet handles GET /sets/{setID} requests.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	set, err := h.sets.GetSet(r.Context(), setID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(set))
}

// ListSets handles GET /sets requests.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.sets.GetAllSets(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]SetResponse, 0, len(sets))
	for _, set := range sets {
		responses = append(responses, setToResponse(set))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// ListSetsByCourse handles GET /courses/{courseID}/sets requests.
func (h *SetHandler) ListSetsByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course ID")
		return
	}

	sets, err := h.sets.GetSetsByCourse(r.Context(), courseID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]SetResponse, 0, len(sets))
	for _, set := range sets {
		responses = append(responses, setToResponse(set))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// AddFlashcards handles POST /sets/{setID}/cards requests.
func (h *SetHandler) AddFlashcards(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req AddFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	candidates := make([]domain.CardCandidate, 0, len(req.Flashcards))
	for _, c := range req.Flashcards {
		candidates = append(candidates, domain.CardCandidate{
			Question: c.Question,
			Answer:   c.Answer,
			Tags:     c.Tags,
		})
	}

	cards, err := h.sets.AddFlashcards(r.Context(), setID, candidates)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cardsToResponse(cards))
}

// DeleteSet handles DELETE /sets/{setID} requests.
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	setID, err := getPathUUID(r, "setID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.sets.DeleteSet(r.Context(), setID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
