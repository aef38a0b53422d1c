package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"surveyform/internal/model"
)

// ValidationFailedResponse lists every missing required answer of a submission
type ValidationFailedResponse struct {
	Error      string                       `json:"error"`
	Violations []model.RequiredFieldMissing `json:"violations"`
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, fallback string) {
	var failed *model.ValidationFailedError
	var emptyPrompt *model.EmptyQuestionPromptError

	switch {
	case errors.As(err, &failed):
		writeJSON(w, http.StatusUnprocessableEntity, ValidationFailedResponse{
			Error:      "validation failed",
			Violations: failed.Violations,
		})
	case errors.As(err, &emptyPrompt):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": emptyPrompt.Error(),
			"index": emptyPrompt.Index,
		})
	case errors.Is(err, model.ErrMissingTitle),
		errors.Is(err, model.ErrNoQuestions),
		errors.Is(err, model.ErrMissingFields),
		errors.Is(err, model.ErrMissingLoginFields),
		errors.Is(err, model.ErrInvalidEmail),
		errors.Is(err, model.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrPersistenceUnavailable):
		log.Warn("store unavailable", zap.Error(err))
		body := map[string]string{"error": model.ErrPersistenceUnavailable.Error()}
		if fallback != "" {
			body["fallback"] = fallback
		}
		writeJSON(w, http.StatusServiceUnavailable, body)
	default:
		log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
