package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name       string
		input      DraftInput
		wantErr    error
		wantPrompt int // index expected in EmptyQuestionPromptError, -1 for none
	}{
		{
			name:       "missing title",
			input:      DraftInput{Title: "", Questions: []Question{{Prompt: "Q1", Required: true}}},
			wantErr:    ErrMissingTitle,
			wantPrompt: -1,
		},
		{
			name:       "whitespace title",
			input:      DraftInput{Title: "   ", Questions: []Question{{Prompt: "Q1"}}},
			wantErr:    ErrMissingTitle,
			wantPrompt: -1,
		},
		{
			name:       "empty questions",
			input:      DraftInput{Title: "Feedback", Questions: []Question{}},
			wantErr:    ErrNoQuestions,
			wantPrompt: -1,
		},
		{
			name:       "nil questions",
			input:      DraftInput{Title: "Feedback"},
			wantErr:    ErrNoQuestions,
			wantPrompt: -1,
		},
		{
			name: "first blank prompt is reported",
			input: DraftInput{Title: "Feedback", Questions: []Question{
				{Prompt: "Fine"},
				{Prompt: "  "},
				{Prompt: ""},
			}},
			wantPrompt: 1,
		},
		{
			name:       "title checked before questions",
			input:      DraftInput{Title: "", Questions: []Question{{Prompt: ""}}},
			wantErr:    ErrMissingTitle,
			wantPrompt: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			survey, err := ValidateDraft(tt.input)
			if survey != nil {
				t.Errorf("Expected no survey, got %+v", survey)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantPrompt >= 0 {
				var promptErr *EmptyQuestionPromptError
				if !errors.As(err, &promptErr) {
					t.Fatalf("Expected EmptyQuestionPromptError, got %v", err)
				}
				if promptErr.Index != tt.wantPrompt {
					t.Errorf("Expected index %d, got %d", tt.wantPrompt, promptErr.Index)
				}
			}
		})
	}
}

func TestValidateDraftNormalizes(t *testing.T) {
	survey, err := ValidateDraft(DraftInput{
		Title:     "  Feedback  ",
		Questions: []Question{{Type: QuestionTypeText, Prompt: "Name", Required: true}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if survey.Title != "Feedback" {
		t.Errorf("Expected trimmed title, got %q", survey.Title)
	}
	if survey.Description != "" {
		t.Errorf("Expected empty description, got %q", survey.Description)
	}
	if survey.CreatedBy != AnonymousAuthor {
		t.Errorf("Expected createdBy %q, got %q", AnonymousAuthor, survey.CreatedBy)
	}
	if !survey.IsActive {
		t.Error("Expected survey to be active")
	}
	if survey.IsSample {
		t.Error("Expected survey not to be a sample")
	}
	if survey.ID != "" {
		t.Errorf("Expected no id before storage, got %q", survey.ID)
	}
}

func TestValidatePatch(t *testing.T) {
	blank := "  "
	title := "  New title "
	active := false

	if err := ValidatePatch(&SurveyPatch{Title: &blank}); !errors.Is(err, ErrMissingTitle) {
		t.Errorf("Expected ErrMissingTitle, got %v", err)
	}
	if err := ValidatePatch(&SurveyPatch{Questions: []Question{}}); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Expected ErrNoQuestions, got %v", err)
	}

	var promptErr *EmptyQuestionPromptError
	err := ValidatePatch(&SurveyPatch{Questions: []Question{{Prompt: "ok"}, {Prompt: ""}}})
	if !errors.As(err, &promptErr) || promptErr.Index != 1 {
		t.Errorf("Expected EmptyQuestionPromptError at 1, got %v", err)
	}

	p := SurveyPatch{Title: &title, IsActive: &active}
	if err := ValidatePatch(&p); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *p.Title != "New title" {
		t.Errorf("Expected trimmed title, got %q", *p.Title)
	}
	if p.Empty() {
		t.Error("Expected patch not to be empty")
	}
	if !(SurveyPatch{}).Empty() {
		t.Error("Expected zero patch to be empty")
	}
}

func TestDraftInputUnmarshalMalformedQuestions(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    error
		wantPrompt int
	}{
		{name: "absent", body: `{"title":"Feedback"}`, wantErr: ErrNoQuestions, wantPrompt: -1},
		{name: "null", body: `{"title":"Feedback","questions":null}`, wantErr: ErrNoQuestions, wantPrompt: -1},
		{name: "string", body: `{"title":"Feedback","questions":"oops"}`, wantErr: ErrNoQuestions, wantPrompt: -1},
		{name: "object", body: `{"title":"Feedback","questions":{}}`, wantErr: ErrNoQuestions, wantPrompt: -1},
		{name: "number", body: `{"title":"Feedback","questions":42}`, wantErr: ErrNoQuestions, wantPrompt: -1},
		{name: "blank title first", body: `{"title":" ","questions":"oops"}`, wantErr: ErrMissingTitle, wantPrompt: -1},
		{name: "string element", body: `{"title":"Feedback","questions":["x"]}`, wantPrompt: 0},
		{name: "later bad element", body: `{"title":"Feedback","questions":[{"prompt":"Q1"},42]}`, wantPrompt: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in DraftInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			_, err := ValidateDraft(in)
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantPrompt >= 0 {
				var promptErr *EmptyQuestionPromptError
				if !errors.As(err, &promptErr) || promptErr.Index != tt.wantPrompt {
					t.Errorf("Expected EmptyQuestionPromptError at %d, got %v", tt.wantPrompt, err)
				}
			}
		})
	}
}

func TestDraftInputUnmarshalKeepsQuestions(t *testing.T) {
	var in DraftInput
	body := `{"title":"Feedback","description":"d","createdBy":"bob","questions":[{"type":"radio","question":"Pick","options":"A, B"}]}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if in.Title != "Feedback" || in.Description != "d" || in.CreatedBy != "bob" {
		t.Errorf("Unexpected draft fields: %+v", in)
	}
	if len(in.Questions) != 1 || in.Questions[0].Prompt != "Pick" || len(in.Questions[0].Options) != 2 {
		t.Errorf("Unexpected questions: %+v", in.Questions)
	}
}

func TestSurveyPatchUnmarshalQuestions(t *testing.T) {
	var untouched SurveyPatch
	if err := json.Unmarshal([]byte(`{"title":"New"}`), &untouched); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if untouched.Questions != nil {
		t.Errorf("Expected absent questions to stay nil, got %+v", untouched.Questions)
	}

	var malformed SurveyPatch
	if err := json.Unmarshal([]byte(`{"questions":"oops"}`), &malformed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if malformed.Empty() {
		t.Error("Expected a malformed question list to count as a change")
	}
	if err := ValidatePatch(&malformed); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Expected ErrNoQuestions, got %v", err)
	}
}
