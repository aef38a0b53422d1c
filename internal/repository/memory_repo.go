package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"surveyform/internal/model"
)

// memorySurveyRepo keeps surveys in process memory. Contents are lost on restart.
// Ids are decimal counters and never comparable with MongoDB ids.
type memorySurveyRepo struct {
	mu        sync.Mutex
	surveys   []*model.Survey
	responses []*model.Response
	nextID    int
	nextResp  int
}

// NewMemorySurveyRepo creates an empty in-memory survey repository
func NewMemorySurveyRepo() SurveyRepo {
	return &memorySurveyRepo{nextID: 1, nextResp: 1}
}

func (r *memorySurveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	survey.ID = strconv.Itoa(r.nextID)
	r.nextID++
	survey.CreatedAt = time.Now()
	survey.UpdatedAt = survey.CreatedAt

	r.surveys = append(r.surveys, cloneSurvey(survey))
	return survey.ID, nil
}

func (r *memorySurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		return cloneSurvey(r.surveys[i]), nil
	}
	return nil, model.ErrSurveyNotFound
}

func (r *memorySurveyRepo) List(ctx context.Context) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Survey, 0, len(r.surveys))
	for _, s := range r.surveys {
		out = append(out, cloneSurvey(s))
	}
	return out, nil
}

func (r *memorySurveyRepo) Update(ctx context.Context, id string, patch model.SurveyPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.ErrSurveyNotFound
	}

	s := r.surveys[i]
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.Questions != nil {
		s.Questions = cloneQuestions(patch.Questions)
	}
	if patch.IsActive != nil {
		s.IsActive = *patch.IsActive
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (r *memorySurveyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.ErrSurveyNotFound
	}
	r.surveys = append(r.surveys[:i], r.surveys[i+1:]...)
	return nil
}

func (r *memorySurveyRepo) AppendResponse(ctx context.Context, response *model.Response) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if IsSampleID(response.SurveyID) || r.indexOf(response.SurveyID) < 0 {
		return "", model.ErrSurveyNotFound
	}

	response.ID = strconv.Itoa(r.nextResp)
	r.nextResp++
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	stored := *response
	stored.Answers = cloneAnswers(response.Answers)
	r.responses = append(r.responses, &stored)
	return response.ID, nil
}

func (r *memorySurveyRepo) ListResponses(ctx context.Context, surveyID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*model.Response{}
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			c := *resp
			c.Answers = cloneAnswers(resp.Answers)
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memorySurveyRepo) indexOf(id string) int {
	for i, s := range r.surveys {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func cloneSurvey(s *model.Survey) *model.Survey {
	c := *s
	c.Questions = cloneQuestions(s.Questions)
	return &c
}

func cloneQuestions(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		q.Options = q.OptionList()
		out[i] = q
	}
	return out
}

func cloneAnswers(a model.Answers) model.Answers {
	out := make(model.Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
