package main

import (
	"context"
	stdlog "log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"surveyform/internal/cache"
	"surveyform/internal/config"
	"surveyform/internal/logger"
	"surveyform/internal/model"
	"surveyform/internal/repository"
	"surveyform/internal/service"
)

// Seeds a demo author and one survey into MongoDB
func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("failed to load config: %s", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %s", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal("failed to ensure user indexes", zap.Error(err))
	}

	authSvc := service.NewAuthService(repository.NewUserRepo(db), cache.NewMemorySessionStore(), service.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		BcryptCost: cfg.BcryptCost,
	}, log)

	user, err := authSvc.Register(ctx, model.RegisterRequest{
		Name:     "Demo Author",
		Email:    "demo@surveyform.local",
		Password: "demo-password",
	})
	if err != nil {
		log.Fatal("failed to create demo user", zap.Error(err))
	}

	principal := &model.Principal{UserID: user.ID, Email: user.Email, Name: user.Name}
	surveySvc := service.NewSurveyService(repository.NewSurveyRepo(db), nil, log)
	survey, err := surveySvc.Create(ctx, principal, model.DraftInput{
		Title:       "Team Retrospective",
		Description: "A short check-in on how the last sprint went.",
		Questions: []model.Question{
			{
				Type:     model.QuestionTypeRadio,
				Prompt:   "How did the sprint go overall?",
				Options:  []string{"Great", "Good", "Okay", "Rough"},
				Required: true,
			},
			{
				Type:    model.QuestionTypeCheckbox,
				Prompt:  "What slowed us down?",
				Options: []string{"Unclear requirements", "Review delays", "Flaky CI", "Meetings"},
			},
			{
				Type:     model.QuestionTypeTextarea,
				Prompt:   "What should we change next sprint?",
				Required: true,
			},
			{
				Type:   model.QuestionTypeEmail,
				Prompt: "Email for follow-up (optional)",
			},
		},
	})
	if err != nil {
		log.Fatal("failed to insert survey", zap.Error(err))
	}

	log.Info("seeded demo data",
		zap.String("userEmail", user.Email),
		zap.String("surveyId", survey.ID),
		zap.String("title", survey.Title))
}
