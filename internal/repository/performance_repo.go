package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// PerformanceRepo handles MongoDB operations for the month-keyed performance
// series, one document per user.
type PerformanceRepo interface {
	Get(ctx context.Context, username string) (*model.PerformanceSeries, error)
	SetMonth(ctx context.Context, username, monthKey string, value float64) error
	IncrMonth(ctx context.Context, username, monthKey string, delta float64) error
}

type performanceRepo struct {
	collection *mongo.Collection
}

// NewPerformanceRepo creates a new performance series repository
func NewPerformanceRepo(db *mongo.Database) PerformanceRepo {
	return &performanceRepo{
		collection: db.Collection("performance"),
	}
}

func (r *performanceRepo) Get(ctx context.Context, username string) (*model.PerformanceSeries, error) {
	var series model.PerformanceSeries
	err := r.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&series)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *performanceRepo) SetMonth(ctx context.Context, username, monthKey string, value float64) error {
	field := fmt.Sprintf("months.%s", monthKey)
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": username},
		bson.M{"$set": bson.M{field: value}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *performanceRepo) IncrMonth(ctx context.Context, username, monthKey string, delta float64) error {
	field := fmt.Sprintf("months.%s", monthKey)
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": username},
		bson.M{"$inc": bson.M{field: delta}},
		options.Update().SetUpsert(true),
	)
	return err
}
