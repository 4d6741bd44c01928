package repository

import (
	"context"
	"time"

	"forcepulse/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MappingRepo handles MongoDB operations for question-force mappings
type MappingRepo interface {
	GetByQuestionID(ctx context.Context, questionID string) (*model.QuestionForceMapping, error)
	Upsert(ctx context.Context, mapping *model.QuestionForceMapping) error
	GetByQuestionIDs(ctx context.Context, questionIDs []string) ([]*model.QuestionForceMapping, error)
}

type mappingRepo struct {
	collection *mongo.Collection
}

// NewMappingRepo creates a new mapping repository
func NewMappingRepo(db *mongo.Database) MappingRepo {
	return &mappingRepo{
		collection: db.Collection("question_force_mappings"),
	}
}

func (r *mappingRepo) GetByQuestionID(ctx context.Context, questionID string) (*model.QuestionForceMapping, error) {
	var mapping model.QuestionForceMapping
	err := r.collection.FindOne(ctx, bson.M{"questionId": questionID}).Decode(&mapping)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepo) Upsert(ctx context.Context, mapping *model.QuestionForceMapping) error {
	mapping.UpdatedAt = time.Now()
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = mapping.UpdatedAt
	}

	// Keyed by question: concurrent first-time mappings of the same question
	// race as last-write-wins, which is harmless because mapping content is
	// deterministic for identical input.
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"questionId": mapping.QuestionID}, mapping, opts)
	return err
}

func (r *mappingRepo) GetByQuestionIDs(ctx context.Context, questionIDs []string) ([]*model.QuestionForceMapping, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": bson.M{"$in": questionIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mappings []*model.QuestionForceMapping
	if err := cursor.All(ctx, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}
