package repository

import (
	"errors"
	"testing"

	"surveyform/internal/model"
)

func TestSampleCatalog(t *testing.T) {
	catalog := NewSampleCatalog()

	samples := catalog.List()
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
	for _, s := range samples {
		if !IsSampleID(s.ID) {
			t.Errorf("Expected sample id prefix, got %q", s.ID)
		}
		if !s.IsSample {
			t.Errorf("Expected %s to be flagged as sample", s.ID)
		}
		if _, err := model.ValidateDraft(model.DraftInput{Title: s.Title, Questions: s.Questions}); err != nil {
			t.Errorf("Sample %s should be a valid draft: %v", s.ID, err)
		}
	}

	got, err := catalog.Get(SampleIDPrefix + "2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Product Feedback Survey" {
		t.Errorf("Expected 'Product Feedback Survey', got %q", got.Title)
	}

	got.Title = "mutated"
	again, _ := catalog.Get(SampleIDPrefix + "2")
	if again.Title == "mutated" {
		t.Error("Get must return a copy")
	}

	if _, err := catalog.Get(SampleIDPrefix + "99"); !errors.Is(err, model.ErrSurveyNotFound) {
		t.Errorf("Expected ErrSurveyNotFound, got %v", err)
	}
}

func TestIsSampleID(t *testing.T) {
	tests := map[string]bool{
		"sample-1":                 true,
		"sample-":                  true,
		"1":                        false,
		"65f1c2a9e4b0a1b2c3d4e5f6": false,
		"my-sample-1":              false,
	}
	for id, want := range tests {
		if got := IsSampleID(id); got != want {
			t.Errorf("IsSampleID(%q) = %v, want %v", id, got, want)
		}
	}
}
