package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// UserRepo handles MongoDB operations for user accounts and their stats.
// The stats mutators are single-document updates built from the store's
// atomic field verbs ($inc, $push, $pull, $max, $set), so each one is
// individually atomic even though no cross-document transaction exists.
type UserRepo interface {
	Insert(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	SetName(ctx context.Context, username, name string) error
	SetPasswordHash(ctx context.Context, username, hash string) error

	// ApplyQuizCreated bumps an admin's authoring stats for a new quiz.
	ApplyQuizCreated(ctx context.Context, username, quizID string, totalMarks float64, public bool) error
	// ApplyQuizDeleted reverses ApplyQuizCreated (MaxQuizMarks is not lowered).
	ApplyQuizDeleted(ctx context.Context, username, quizID string, public bool) error
	// ApplySubmission records a graded attempt on a participant's stats.
	ApplySubmission(ctx context.Context, username, quizID string, averageScore, rawScore float64) error
	// IncrementParticipants bumps an admin's participant counter by one.
	IncrementParticipants(ctx context.Context, username string) error
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

func (r *userRepo) Insert(ctx context.Context, user *model.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Exists(ctx context.Context, username string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) SetName(ctx context.Context, username, name string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": username},
		bson.M{"$set": bson.M{"name": name}})
	return err
}

func (r *userRepo) SetPasswordHash(ctx context.Context, username, hash string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": username},
		bson.M{"$set": bson.M{"password": hash}})
	return err
}

func (r *userRepo) ApplyQuizCreated(ctx context.Context, username, quizID string, totalMarks float64, public bool) error {
	inc := bson.M{"adminStats.totalQuizzes": 1}
	if public {
		inc["adminStats.publicQuizzes"] = 1
	}
	update := bson.M{
		"$inc":  inc,
		"$push": bson.M{"quizzes": quizID},
		"$max":  bson.M{"adminStats.maxQuizMarks": totalMarks},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": username}, update)
	return err
}

func (r *userRepo) ApplyQuizDeleted(ctx context.Context, username, quizID string, public bool) error {
	inc := bson.M{"adminStats.totalQuizzes": -1}
	if public {
		inc["adminStats.publicQuizzes"] = -1
	}
	update := bson.M{
		"$inc":  inc,
		"$pull": bson.M{"quizzes": quizID},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": username}, update)
	return err
}

func (r *userRepo) ApplySubmission(ctx context.Context, username, quizID string, averageScore, rawScore float64) error {
	update := bson.M{
		"$inc": bson.M{
			"participantStats.totalQuizzes": 1,
			"participantStats.attempts":     1,
		},
		"$set":  bson.M{"participantStats.averageScore": averageScore},
		"$max":  bson.M{"participantStats.bestScore": rawScore},
		"$push": bson.M{"quizzes": quizID},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": username}, update)
	return err
}

func (r *userRepo) IncrementParticipants(ctx context.Context, username string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": username},
		bson.M{"$inc": bson.M{"adminStats.totalParticipants": 1}})
	return err
}
