package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"surveyform/internal/model"
	"surveyform/internal/repository"
)

// MsgResponseSubmitted is published to survey subscribers after a stored submission
const MsgResponseSubmitted = "response_submitted"

// ResponseService validates and stores respondent submissions
type ResponseService struct {
	surveyRepo  repository.SurveyRepo
	broadcaster Broadcaster
	log         *zap.Logger
	now         func() time.Time
}

// NewResponseService creates a new response service
func NewResponseService(surveyRepo repository.SurveyRepo, log *zap.Logger) *ResponseService {
	return &ResponseService{
		surveyRepo: surveyRepo,
		log:        log,
		now:        time.Now,
	}
}

// SetBroadcaster injects the publisher for submission events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CheckRequired returns every required question of survey left blank in answers
func CheckRequired(survey *model.Survey, answers model.Answers) []model.RequiredFieldMissing {
	var violations []model.RequiredFieldMissing
	for i, q := range survey.Questions {
		if q.Required && !answers.Answered(i) {
			violations = append(violations, model.RequiredFieldMissing{Index: i})
		}
	}
	return violations
}

// Collect validates answers against survey and stores the resulting response.
// All missing required answers are reported together. Submissions for sample
// surveys are accepted without being stored.
func (s *ResponseService) Collect(ctx context.Context, survey *model.Survey, answers model.Answers, respondentEmail string) (*model.Submission, error) {
	if violations := CheckRequired(survey, answers); len(violations) > 0 {
		return nil, &model.ValidationFailedError{Violations: violations}
	}

	email := strings.TrimSpace(respondentEmail)
	if email == "" {
		email = model.AnonymousRespondent
	}
	if answers == nil {
		answers = model.Answers{}
	}

	response := &model.Response{
		SurveyID:        survey.ID,
		Answers:         answers,
		RespondentEmail: email,
		SubmittedAt:     s.now(),
	}

	if survey.IsSample {
		s.log.Debug("sample survey submission simulated", zap.String("surveyId", survey.ID))
		return &model.Submission{Response: response, Simulated: true}, nil
	}

	id, err := s.surveyRepo.AppendResponse(ctx, response)
	if err != nil {
		s.log.Error("failed to store response", zap.String("surveyId", survey.ID), zap.Error(err))
		return nil, fmt.Errorf("service: failed to store response: %w", err)
	}
	s.log.Info("response stored", zap.String("surveyId", survey.ID), zap.String("responseId", id))

	if s.broadcaster != nil {
		s.broadcaster.Publish(survey.ID, MsgResponseSubmitted, map[string]interface{}{
			"surveyId":    survey.ID,
			"responseId":  id,
			"submittedAt": response.SubmittedAt,
		})
	}

	return &model.Submission{Response: response, Persisted: true}, nil
}
