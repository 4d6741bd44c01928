package repository

import (
	"context"
	"time"

	"forcepulse/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalysisRepo handles MongoDB operations for force distributions and
// survey-level aggregate scores
type AnalysisRepo interface {
	UpsertDistribution(ctx context.Context, dist *model.ForceDistribution) error
	GetDistribution(ctx context.Context, surveyID, questionID string) (*model.ForceDistribution, error)
	GetDistributionsBySurvey(ctx context.Context, surveyID string) ([]*model.ForceDistribution, error)
	UpsertAggregate(ctx context.Context, agg *model.AggregateForceScore) error
	GetAggregate(ctx context.Context, surveyID string) (*model.AggregateForceScore, error)
}

type analysisRepo struct {
	distributions *mongo.Collection
	aggregates    *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		distributions: db.Collection("force_distributions"),
		aggregates:    db.Collection("aggregate_force_scores"),
	}
}

func (r *analysisRepo) UpsertDistribution(ctx context.Context, dist *model.ForceDistribution) error {
	dist.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"surveyId": dist.SurveyID, "questionId": dist.QuestionID}
	_, err := r.distributions.ReplaceOne(ctx, filter, dist, opts)
	return err
}

func (r *analysisRepo) GetDistribution(ctx context.Context, surveyID, questionID string) (*model.ForceDistribution, error) {
	var dist model.ForceDistribution
	err := r.distributions.FindOne(ctx, bson.M{"surveyId": surveyID, "questionId": questionID}).Decode(&dist)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *analysisRepo) GetDistributionsBySurvey(ctx context.Context, surveyID string) ([]*model.ForceDistribution, error) {
	cursor, err := r.distributions.Find(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dists []*model.ForceDistribution
	if err := cursor.All(ctx, &dists); err != nil {
		return nil, err
	}
	return dists, nil
}

func (r *analysisRepo) UpsertAggregate(ctx context.Context, agg *model.AggregateForceScore) error {
	agg.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.aggregates.ReplaceOne(ctx, bson.M{"surveyId": agg.SurveyID}, agg, opts)
	return err
}

func (r *analysisRepo) GetAggregate(ctx context.Context, surveyID string) (*model.AggregateForceScore, error) {
	var agg model.AggregateForceScore
	err := r.aggregates.FindOne(ctx, bson.M{"surveyId": surveyID}).Decode(&agg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
