package repository

import (
	"strings"
	"time"

	"surveyform/internal/model"
)

// SampleIDPrefix marks built-in demonstration surveys
const SampleIDPrefix = "sample-"

// IsSampleID reports whether id names a built-in sample survey
func IsSampleID(id string) bool {
	return strings.HasPrefix(id, SampleIDPrefix)
}

// SampleCatalog serves the built-in demonstration surveys.
// Samples are read-only and never stored.
type SampleCatalog struct {
	surveys []model.Survey
}

// NewSampleCatalog creates the catalog with the default samples
func NewSampleCatalog() *SampleCatalog {
	return &SampleCatalog{surveys: defaultSamples()}
}

// List returns copies of every sample survey
func (c *SampleCatalog) List() []*model.Survey {
	out := make([]*model.Survey, 0, len(c.surveys))
	for i := range c.surveys {
		out = append(out, cloneSurvey(&c.surveys[i]))
	}
	return out
}

// Get returns a copy of the sample with the given id
func (c *SampleCatalog) Get(id string) (*model.Survey, error) {
	for i := range c.surveys {
		if c.surveys[i].ID == id {
			return cloneSurvey(&c.surveys[i]), nil
		}
	}
	return nil, model.ErrSurveyNotFound
}

func defaultSamples() []model.Survey {
	return []model.Survey{
		{
			ID:          SampleIDPrefix + "1",
			Title:       "Customer Satisfaction Survey",
			Description: "Help us improve our services by sharing your experience with our products and customer support.",
			Questions: []model.Question{
				{
					Type:     model.QuestionTypeRadio,
					Prompt:   "How satisfied are you with our product?",
					Options:  model.ParseOptions("Very Satisfied,Satisfied,Neutral,Dissatisfied,Very Dissatisfied"),
					Required: true,
				},
				{
					Type:     model.QuestionTypeRadio,
					Prompt:   "How would you rate our customer service?",
					Options:  model.ParseOptions("Excellent,Good,Average,Poor,Very Poor"),
					Required: true,
				},
				{
					Type:   model.QuestionTypeTextarea,
					Prompt: "What can we do to improve your experience?",
				},
				{
					Type:     model.QuestionTypeRadio,
					Prompt:   "Would you recommend us to others?",
					Options:  model.ParseOptions("Definitely,Probably,Not Sure,Probably Not,Definitely Not"),
					Required: true,
				},
			},
			CreatedBy: "Sample Admin",
			CreatedAt: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			IsSample:  true,
		},
		{
			ID:          SampleIDPrefix + "2",
			Title:       "Product Feedback Survey",
			Description: "Share your thoughts about our new product features and help us prioritize future development.",
			Questions: []model.Question{
				{
					Type:     model.QuestionTypeText,
					Prompt:   "What is your primary use case for our product?",
					Required: true,
				},
				{
					Type:     model.QuestionTypeRadio,
					Prompt:   "How easy is our product to use?",
					Options:  model.ParseOptions("Very Easy,Easy,Moderate,Difficult,Very Difficult"),
					Required: true,
				},
				{
					Type:    model.QuestionTypeCheckbox,
					Prompt:  "Which features do you use most often?",
					Options: model.ParseOptions("Dashboard,Reports,Analytics,Integrations,Mobile App,API"),
				},
				{
					Type:     model.QuestionTypeRadio,
					Prompt:   "How likely are you to continue using our product?",
					Options:  model.ParseOptions("Very Likely,Likely,Neutral,Unlikely,Very Unlikely"),
					Required: true,
				},
				{
					Type:   model.QuestionTypeTextarea,
					Prompt: "What new features would you like to see?",
				},
			},
			CreatedBy: "Product Team",
			CreatedAt: time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			IsSample:  true,
		},
	}
}
