package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"surveyform/internal/model"
	"surveyform/internal/service"
	"surveyform/internal/transport/rest/middleware"
)

// SurveyHandler handles survey and response endpoints for one survey store
type SurveyHandler struct {
	surveySvc   *service.SurveyService
	responseSvc *service.ResponseService
	log         *zap.Logger
	fallback    string // advertised when the store is unreachable
}

// NewSurveyHandler creates a new survey handler. fallback is the path clients
// may retry against when the store is unavailable; empty disables the hint.
func NewSurveyHandler(surveySvc *service.SurveyService, responseSvc *service.ResponseService, log *zap.Logger, fallback string) *SurveyHandler {
	return &SurveyHandler{
		surveySvc:   surveySvc,
		responseSvc: responseSvc,
		log:         log,
		fallback:    fallback,
	}
}

// SubmitResponseRequest is the request body for answering a survey.
// responses is the legacy name for answers.
type SubmitResponseRequest struct {
	Answers         model.Answers `json:"answers"`
	Responses       model.Answers `json:"responses"`
	RespondentEmail string        `json:"respondentEmail"`
}

// Create handles POST /surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.DraftInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), middleware.GetPrincipal(r.Context()), req)
	if err != nil {
		writeServiceError(w, h.log, err, h.fallback)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      survey.ID,
	})
}

// List handles GET /surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, h.fallback)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

// Samples handles GET /surveys/samples
func (h *SurveyHandler) Samples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.surveySvc.Samples())
}

// Get handles GET /surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, h.log, err, h.fallback)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Update handles PUT /surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var patch model.SurveyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.surveySvc.Update(r.Context(), middleware.GetPrincipal(r.Context()), surveyID, patch); err != nil {
		writeServiceError(w, h.log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	if err := h.surveySvc.Delete(r.Context(), middleware.GetPrincipal(r.Context()), surveyID); err != nil {
		writeServiceError(w, h.log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SubmitResponse handles POST /surveys/{surveyId}/responses
func (h *SurveyHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	answers := req.Answers
	if answers == nil {
		answers = req.Responses
	}

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, h.log, err, "")
		return
	}

	sub, err := h.responseSvc.Collect(r.Context(), survey, answers, req.RespondentEmail)
	if err != nil {
		writeServiceError(w, h.log, err, "")
		return
	}

	if sub.Simulated {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"simulated": true,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      sub.Response.ID,
	})
}

// ListResponses handles GET /surveys/{surveyId}/responses
func (h *SurveyHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	responses, err := h.surveySvc.Responses(r.Context(), middleware.GetPrincipal(r.Context()), surveyID)
	if err != nil {
		writeServiceError(w, h.log, err, "")
		return
	}
	writeJSON(w, http.StatusOK, responses)
}
