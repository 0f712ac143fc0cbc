package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// TagRepo handles MongoDB operations for the subject/tag catalog,
// one document per subject.
type TagRepo interface {
	Register(ctx context.Context, subject, tag string) error
	All(ctx context.Context) ([]*model.TagEntry, error)
}

type tagRepo struct {
	collection *mongo.Collection
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *mongo.Database) TagRepo {
	return &tagRepo{
		collection: db.Collection("tags"),
	}
}

func (r *tagRepo) Register(ctx context.Context, subject, tag string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": subject},
		bson.M{"$addToSet": bson.M{"tags": tag}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *tagRepo) All(ctx context.Context) ([]*model.TagEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.TagEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
