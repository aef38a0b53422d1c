package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// AnonymousAuthor is recorded when a survey has no author
const AnonymousAuthor = "anonymous"

// Survey is an ordered set of questions plus metadata
type Survey struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Questions   []Question `json:"questions" bson:"questions"`
	CreatedBy   string     `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	IsActive    bool       `json:"isActive" bson:"isActive"`
	IsSample    bool       `json:"isSample,omitempty" bson:"-"` // samples are never stored
}

// DraftInput is an unvalidated survey as submitted by an author
type DraftInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedBy   string     `json:"createdBy"`
}

// SurveyPatch is a partial update. Nil fields are left untouched.
type SurveyPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

type draftInputJSON struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   json.RawMessage `json:"questions"`
	CreatedBy   string          `json:"createdBy"`
}

// UnmarshalJSON reads questions leniently so a malformed list reaches
// ValidateDraft instead of failing the decode
func (in *DraftInput) UnmarshalJSON(data []byte) error {
	var raw draftInputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	questions, err := decodeQuestions(raw.Questions)
	if err != nil {
		return err
	}
	*in = DraftInput{
		Title:       raw.Title,
		Description: raw.Description,
		Questions:   questions,
		CreatedBy:   raw.CreatedBy,
	}
	return nil
}

type surveyPatchJSON struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Questions   json.RawMessage `json:"questions"`
	IsActive    *bool           `json:"isActive"`
}

// UnmarshalJSON reads questions the same way as DraftInput. A present but
// malformed list becomes an empty one so the patch is rejected.
func (p *SurveyPatch) UnmarshalJSON(data []byte) error {
	var raw surveyPatchJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	questions, err := decodeQuestions(raw.Questions)
	if err != nil {
		return err
	}
	*p = SurveyPatch{
		Title:       raw.Title,
		Description: raw.Description,
		Questions:   questions,
		IsActive:    raw.IsActive,
	}
	return nil
}

// decodeQuestions returns nil when questions are absent, an empty list when
// they are not an array, and a blank question for every non-object element
func decodeQuestions(raw json.RawMessage) ([]Question, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []Question{}, nil
	}

	questions := make([]Question, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			questions[i] = Question{Type: QuestionTypeText}
			continue
		}
		if err := json.Unmarshal(elem, &questions[i]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

// Empty reports whether the patch changes nothing
func (p SurveyPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Questions == nil && p.IsActive == nil
}

// ValidateDraft checks an authored survey and returns it normalized.
// Validation stops at the first problem found.
func ValidateDraft(in DraftInput) (*Survey, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	if err := validateQuestions(in.Questions); err != nil {
		return nil, err
	}

	createdBy := strings.TrimSpace(in.CreatedBy)
	if createdBy == "" {
		createdBy = AnonymousAuthor
	}

	questions := make([]Question, len(in.Questions))
	copy(questions, in.Questions)

	return &Survey{
		Title:       title,
		Description: in.Description,
		Questions:   questions,
		CreatedBy:   createdBy,
		IsActive:    true,
	}, nil
}

// ValidatePatch applies the draft rules to the fields a patch sets and
// trims the title in place.
func ValidatePatch(p *SurveyPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrMissingTitle
		}
		p.Title = &title
	}
	if p.Questions != nil {
		return validateQuestions(p.Questions)
	}
	return nil
}

func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return &EmptyQuestionPromptError{Index: i}
		}
	}
	return nil
}
