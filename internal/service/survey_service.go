package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"surveyform/internal/model"
	"surveyform/internal/repository"
)

// SurveyService handles survey authoring and lookup
type SurveyService struct {
	surveyRepo repository.SurveyRepo
	samples    *repository.SampleCatalog
	log        *zap.Logger
}

// NewSurveyService creates a new survey service. samples may be nil when the
// service should not expose the demonstration surveys.
func NewSurveyService(surveyRepo repository.SurveyRepo, samples *repository.SampleCatalog, log *zap.Logger) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		samples:    samples,
		log:        log,
	}
}

// Create validates a draft and stores it
func (s *SurveyService) Create(ctx context.Context, p *model.Principal, in model.DraftInput) (*model.Survey, error) {
	if p == nil {
		return nil, model.ErrUnauthenticated
	}
	if in.CreatedBy == "" {
		in.CreatedBy = p.Email
	}

	survey, err := model.ValidateDraft(in)
	if err != nil {
		s.log.Debug("survey draft rejected", zap.String("user", p.UserID), zap.Error(err))
		return nil, err
	}

	id, err := s.surveyRepo.Create(ctx, survey)
	if err != nil {
		s.log.Error("failed to create survey", zap.Error(err))
		return nil, fmt.Errorf("service: failed to create survey: %w", err)
	}
	s.log.Info("survey created",
		zap.String("surveyId", id),
		zap.String("createdBy", survey.CreatedBy),
		zap.Int("questions", len(survey.Questions)))
	return survey, nil
}

// GetByID retrieves a survey. Sample ids resolve against the sample catalog.
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	if s.samples != nil && repository.IsSampleID(id) {
		return s.samples.Get(id)
	}
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapLookup("get survey", err)
	}
	return survey, nil
}

// List retrieves all stored surveys in store order
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		s.log.Error("failed to list surveys", zap.Error(err))
		return nil, fmt.Errorf("service: failed to list surveys: %w", err)
	}
	return surveys, nil
}

// Samples returns the built-in demonstration surveys
func (s *SurveyService) Samples() []*model.Survey {
	if s.samples == nil {
		return []*model.Survey{}
	}
	return s.samples.List()
}

// Update applies a validated patch to a stored survey
func (s *SurveyService) Update(ctx context.Context, p *model.Principal, id string, patch model.SurveyPatch) error {
	if p == nil {
		return model.ErrUnauthenticated
	}
	if repository.IsSampleID(id) {
		return model.ErrSurveyNotFound
	}
	if err := model.ValidatePatch(&patch); err != nil {
		return err
	}
	if patch.Empty() {
		_, err := s.GetByID(ctx, id)
		return err
	}

	if err := s.surveyRepo.Update(ctx, id, patch); err != nil {
		return wrapLookup("update survey", err)
	}
	s.log.Info("survey updated", zap.String("surveyId", id), zap.String("user", p.UserID))
	return nil
}

// Delete removes a stored survey. Its responses are kept.
func (s *SurveyService) Delete(ctx context.Context, p *model.Principal, id string) error {
	if p == nil {
		return model.ErrUnauthenticated
	}
	if repository.IsSampleID(id) {
		return model.ErrSurveyNotFound
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return wrapLookup("delete survey", err)
	}
	s.log.Info("survey deleted", zap.String("surveyId", id), zap.String("user", p.UserID))
	return nil
}

// Responses lists the stored responses of a survey
func (s *SurveyService) Responses(ctx context.Context, p *model.Principal, id string) ([]*model.Response, error) {
	if p == nil {
		return nil, model.ErrUnauthenticated
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if repository.IsSampleID(id) {
		return []*model.Response{}, nil
	}
	responses, err := s.surveyRepo.ListResponses(ctx, id)
	if err != nil {
		s.log.Error("failed to list responses", zap.String("surveyId", id), zap.Error(err))
		return nil, fmt.Errorf("service: failed to list responses: %w", err)
	}
	return responses, nil
}

// wrapLookup passes not-found through untouched and wraps everything else
func wrapLookup(op string, err error) error {
	if errors.Is(err, model.ErrSurveyNotFound) {
		return err
	}
	return fmt.Errorf("service: failed to %s: %w", op, err)
}
