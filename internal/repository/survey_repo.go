package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"surveyform/internal/model"
)

// SurveyRepo persists surveys and the responses submitted for them
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) (string, error)
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	List(ctx context.Context) ([]*model.Survey, error)
	Update(ctx context.Context, id string, patch model.SurveyPatch) error
	Delete(ctx context.Context, id string) error
	AppendResponse(ctx context.Context, response *model.Response) (string, error)
	ListResponses(ctx context.Context, surveyID string) ([]*model.Response, error)
}

type surveyRepo struct {
	surveys   *mongo.Collection
	responses *mongo.Collection
}

// NewSurveyRepo creates a MongoDB-backed survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		surveys:   db.Collection("surveys"),
		responses: db.Collection("responses"),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	survey.ID = ""
	survey.CreatedAt = time.Now()
	survey.UpdatedAt = survey.CreatedAt

	result, err := r.surveys.InsertOne(ctx, survey)
	if err != nil {
		return "", storeError("insert survey", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert survey: unexpected id type %T", result.InsertedID)
	}
	survey.ID = oid.Hex()
	return survey.ID, nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrSurveyNotFound
	}

	var survey model.Survey
	err = r.surveys.FindOne(ctx, bson.M{"_id": oid}).Decode(&survey)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrSurveyNotFound
	}
	if err != nil {
		return nil, storeError("find survey", err)
	}
	survey.ID = id
	return &survey, nil
}

func (r *surveyRepo) List(ctx context.Context) ([]*model.Survey, error) {
	cursor, err := r.surveys.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError("list surveys", err)
	}
	defer cursor.Close(ctx)

	surveys := []*model.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, storeError("decode surveys", err)
	}
	return surveys, nil
}

func (r *surveyRepo) Update(ctx context.Context, id string, patch model.SurveyPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrSurveyNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Questions != nil {
		set["questions"] = patch.Questions
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}

	result, err := r.surveys.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return storeError("update survey", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrSurveyNotFound
	}
	return nil
}

func (r *surveyRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrSurveyNotFound
	}

	result, err := r.surveys.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete survey", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrSurveyNotFound
	}
	return nil
}

func (r *surveyRepo) AppendResponse(ctx context.Context, response *model.Response) (string, error) {
	if IsSampleID(response.SurveyID) {
		return "", model.ErrSurveyNotFound
	}
	oid, err := primitive.ObjectIDFromHex(response.SurveyID)
	if err != nil {
		return "", model.ErrSurveyNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err = r.surveys.FindOne(ctx, bson.M{"_id": oid}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", model.ErrSurveyNotFound
	}
	if err != nil {
		return "", storeError("find survey", err)
	}

	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	response.ID = ""

	result, err := r.responses.InsertOne(ctx, response)
	if err != nil {
		return "", storeError("insert response", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		response.ID = oid.Hex()
	}
	return response.ID, nil
}

func (r *surveyRepo) ListResponses(ctx context.Context, surveyID string) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.responses.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, storeError("list responses", err)
	}
	defer cursor.Close(ctx)

	responses := []*model.Response{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, storeError("decode responses", err)
	}
	return responses, nil
}

// storeError marks driver failures that mean the store cannot be reached
func storeError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, model.ErrPersistenceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var selErr topology.ServerSelectionError
	switch {
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return true
	case errors.Is(err, mongo.ErrClientDisconnected):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.As(err, &selErr):
		return true
	}
	return false
}
