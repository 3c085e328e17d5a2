package services

import (
	"context"
	"time"

	"querynest/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the transactional document store the services run against.
// *db.Store is the MongoDB implementation; tests substitute an in-memory
// double. Methods called with the context passed to a WithTransaction
// callback take part in that transaction.
type Store interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	TagByName(ctx context.Context, name string) (*models.Tag, error)
	TagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error)
	TagsByNames(ctx context.Context, names []string) ([]models.Tag, error)

	QuestionByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	AnswerByID(ctx context.Context, id primitive.ObjectID) (*models.Answer, error)
	AnswersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Answer, error)

	ProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error)
	Profiles(ctx context.Context) ([]models.UserProfile, error)

	InsertQuestion(ctx context.Context, question *models.Question) error
	InsertAnswer(ctx context.Context, answer *models.Answer) error
	UpdateQuestion(ctx context.Context, question *models.Question) error
	UpdateAnswer(ctx context.Context, answer *models.Answer) error
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error

	UpsertLeaderboard(ctx context.Context, board *models.Leaderboard) error
	LeaderboardByBucket(ctx context.Context, month, year int, boardType string, tagID *primitive.ObjectID) (*models.Leaderboard, error)

	DeleteExpiredUnverifiedUsers(ctx context.Context, cutoff time.Time) (int64, error)
}
