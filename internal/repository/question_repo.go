package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// QuestionRepo handles MongoDB operations for pooled questions
type QuestionRepo interface {
	Insert(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error)
	// UpdateAndRetain overwrites the question's content fields and increments
	// its reference count by one, in a single document update.
	UpdateAndRetain(ctx context.Context, question *model.Question) error
	// DecrementAskedIn atomically decrements the reference count and returns
	// the remaining count. found is false when no such question exists.
	DecrementAskedIn(ctx context.Context, id string) (remaining int, found bool, err error)
	Delete(ctx context.Context, id string) error
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Insert(ctx context.Context, question *model.Question) error {
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) UpdateAndRetain(ctx context.Context, question *model.Question) error {
	update := bson.M{
		"$set": bson.M{
			"type":           question.Type,
			"text":           question.Text,
			"options":        question.Options,
			"correctIndex":   question.CorrectIndex,
			"correctInteger": question.CorrectInteger,
			"subject":        question.Subject,
			"tag":            question.Tag,
		},
		"$inc": bson.M{"askedIn": 1},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": question.ID}, update)
	return err
}

func (r *questionRepo) DecrementAskedIn(ctx context.Context, id string) (int, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var question model.Question
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"askedIn": -1}},
		opts,
	).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return question.AskedIn, true, nil
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
