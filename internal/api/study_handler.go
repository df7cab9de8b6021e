package api

import (
	"log/slog"
	"net/http"

	"github.com/palime/palime-api/internal/api/shared"
	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/service"
	"github.com/palime/palime-api/internal/study"
)

// StudyHandler handles study session HTTP requests.
type StudyHandler struct {
	study  service.StudyService
	logger *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studySvc service.StudyService, log *slog.Logger) *StudyHandler {
	if studySvc == nil {
		panic("studyHandler: service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &StudyHandler{
		study:  studySvc,
		logger: log.With(slog.String("component", "study_handler")),
	}
}

// StartSession handles POST /study/sessions requests.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.study.StartSession(r.Context(), req.DeckID, req.Endless)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("session started",
		slog.String("session_id", view.ID.String()),
		slog.String("state", string(view.State)))
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /study/sessions/{id} requests.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.study.GetSession(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitAnswer handles POST /study/sessions/{id}/answer requests.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.study.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// MarkCorrect handles POST /study/sessions/{id}/mark-correct requests.
func (h *StudyHandler) MarkCorrect(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.study.MarkCorrect(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// UpdateSettings handles PUT /study/sessions/{id}/settings requests.
func (h *StudyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateSettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.study.UpdateSettings(r.Context(), id,
		domain.StudyDirection(req.Direction), req.Endless)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// EndSession handles DELETE /study/sessions/{id} requests. The final
// session counters are returned so the client can show a summary screen.
func (h *StudyHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.study.EndSession(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, struct {
		Stats    study.Stats `json:"stats"`
		Accuracy int         `json:"accuracy"`
	}{Stats: stats, Accuracy: stats.Accuracy()})
}
