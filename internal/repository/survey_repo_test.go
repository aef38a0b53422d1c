package repository

import (
	"context"
	"errors"
	"testing"

	"surveyform/internal/model"
	"surveyform/internal/testutil"
)

func TestMongoSurveyRepoLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSurveyRepo(db)
	ctx := context.Background()

	survey := newTestSurvey("Feedback")
	id, err := repo.Create(ctx, survey)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" || survey.ID != id {
		t.Fatalf("Expected id to be assigned, got %q / %q", id, survey.ID)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Feedback" || len(got.Questions) != 2 {
		t.Errorf("Unexpected survey: %+v", got)
	}
	if got.Questions[1].Options[1] != "Bad" {
		t.Errorf("Expected options to survive storage, got %v", got.Questions[1].Options)
	}

	title := "Renamed"
	if err := repo.Update(ctx, id, model.SurveyPatch{Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, id)
	if got.Title != "Renamed" {
		t.Errorf("Expected title 'Renamed', got %q", got.Title)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Errorf("Expected one survey with id %s, got %+v", id, list)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, model.ErrSurveyNotFound) {
		t.Errorf("Expected ErrSurveyNotFound after delete, got %v", err)
	}
}

func TestMongoSurveyRepoResponses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSurveyRepo(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, newTestSurvey("Feedback"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	respID, err := repo.AppendResponse(ctx, &model.Response{
		SurveyID:        id,
		Answers:         model.Answers{0: "Alice", 1: "Good"},
		RespondentEmail: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("AppendResponse failed: %v", err)
	}
	if respID == "" {
		t.Error("Expected a response id")
	}

	responses, err := repo.ListResponses(ctx, id)
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("Expected 1 response, got %d", len(responses))
	}
	if responses[0].Answers[1] != "Good" {
		t.Errorf("Expected answer 'Good' at index 1, got %q", responses[0].Answers[1])
	}
}

func TestMongoSurveyRepoMalformedIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSurveyRepo(db)
	ctx := context.Background()

	for _, id := range []string{"not-an-object-id", "1", SampleIDPrefix + "1"} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, model.ErrSurveyNotFound) {
			t.Errorf("GetByID(%q): expected ErrSurveyNotFound, got %v", id, err)
		}
		if _, err := repo.AppendResponse(ctx, &model.Response{SurveyID: id}); !errors.Is(err, model.ErrSurveyNotFound) {
			t.Errorf("AppendResponse(%q): expected ErrSurveyNotFound, got %v", id, err)
		}
	}
}

func TestMongoUserRepoUniqueEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	if err := EnsureUserIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureUserIndexes failed: %v", err)
	}
	repo := NewUserRepo(db)

	if _, err := repo.Create(ctx, &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, &model.User{Name: "Alice", Email: "ALICE@example.com", PasswordHash: "h"}); !errors.Is(err, model.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestStoreErrorClassification(t *testing.T) {
	err := storeError("find survey", context.DeadlineExceeded)
	if !errors.Is(err, model.ErrPersistenceUnavailable) {
		t.Errorf("Expected deadline to be unavailable, got %v", err)
	}

	plain := errors.New("boom")
	err = storeError("find survey", plain)
	if errors.Is(err, model.ErrPersistenceUnavailable) {
		t.Errorf("Expected plain error not to be unavailable, got %v", err)
	}
	if !errors.Is(err, plain) {
		t.Errorf("Expected wrapped error to keep its cause, got %v", err)
	}
}
