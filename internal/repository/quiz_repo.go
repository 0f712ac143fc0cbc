package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// QuizRepo handles MongoDB operations for quiz definitions
type QuizRepo interface {
	Insert(ctx context.Context, quiz *model.Quiz) error
	GetByID(ctx context.Context, quizID string) (*model.Quiz, error)
	Update(ctx context.Context, quiz *model.Quiz) error
	Delete(ctx context.Context, quizID string) error
	ListPublic(ctx context.Context) ([]*model.Quiz, error)
	ListByAdmin(ctx context.Context, username string) ([]*model.Quiz, error)
}

type quizRepo struct {
	collection *mongo.Collection
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *mongo.Database) QuizRepo {
	return &quizRepo{
		collection: db.Collection("quizzes"),
	}
}

func (r *quizRepo) Insert(ctx context.Context, quiz *model.Quiz) error {
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt
	_, err := r.collection.InsertOne(ctx, quiz)
	return err
}

func (r *quizRepo) GetByID(ctx context.Context, quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.collection.FindOne(ctx, bson.M{"_id": quizID}).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) Update(ctx context.Context, quiz *model.Quiz) error {
	quiz.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": quiz.QuizID}, quiz)
	return err
}

func (r *quizRepo) Delete(ctx context.Context, quizID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": quizID})
	return err
}

func (r *quizRepo) ListPublic(ctx context.Context) ([]*model.Quiz, error) {
	return r.list(ctx, bson.M{"visibility": model.VisibilityPublic})
}

func (r *quizRepo) ListByAdmin(ctx context.Context, username string) ([]*model.Quiz, error) {
	return r.list(ctx, bson.M{"adminIds": username})
}

func (r *quizRepo) list(ctx context.Context, filter bson.M) ([]*model.Quiz, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []*model.Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}
