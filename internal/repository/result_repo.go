package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// ResultRepo handles MongoDB operations for per-quiz result records.
// Participant entries live under the "scores.<username>" path so that
// concurrent submissions from different users are independent field writes
// on the same document.
type ResultRepo interface {
	Create(ctx context.Context, quizID string) error
	Get(ctx context.Context, quizID string) (*model.ResultRecord, error)
	SetEntry(ctx context.Context, quizID, username string, entry model.ParticipantResult) error
	HasEntry(ctx context.Context, quizID, username string) (bool, error)
	Delete(ctx context.Context, quizID string) error
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("quizResults"),
	}
}

func (r *resultRepo) Create(ctx context.Context, quizID string) error {
	record := model.ResultRecord{
		QuizID: quizID,
		Scores: map[string]model.ParticipantResult{},
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *resultRepo) Get(ctx context.Context, quizID string) (*model.ResultRecord, error) {
	var record model.ResultRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": quizID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *resultRepo) SetEntry(ctx context.Context, quizID, username string, entry model.ParticipantResult) error {
	field := fmt.Sprintf("scores.%s", username)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": quizID},
		bson.M{"$set": bson.M{field: entry}})
	return err
}

func (r *resultRepo) HasEntry(ctx context.Context, quizID, username string) (bool, error) {
	field := fmt.Sprintf("scores.%s", username)
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"_id": quizID,
		field: bson.M{"$exists": true},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *resultRepo) Delete(ctx context.Context, quizID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": quizID})
	return err
}
