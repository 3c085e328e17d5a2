package db

import (
	"context"
	"regexp"
	"time"

	"querynest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection        = "users"
	ProfilesCollection     = "user_profiles"
	TagsCollection         = "tag_details"
	QuestionsCollection    = "questions"
	AnswersCollection      = "answers"
	LeaderboardsCollection = "leaderboards"
)

// Store gives the service layer typed access to the document store. Every
// method honors a session context, so calls made inside WithTransaction
// participate in that transaction.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewStore(client *mongo.Client, database *mongo.Database) *Store {
	return &Store{client: client, database: database}
}

// WithTransaction runs fn inside a single all-or-nothing MongoDB
// transaction. Any error from fn aborts the transaction and undoes every
// write made within it.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// TagByName resolves a tag case-insensitively, matching how lookups behave
// elsewhere in the API.
func (s *Store) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	filter := bson.M{"tagName": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
	var tag models.Tag
	if err := s.database.Collection(TagsCollection).FindOne(ctx, filter).Decode(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *Store) TagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.database.Collection(TagsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *Store) TagsByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	cursor, err := s.database.Collection(TagsCollection).Find(ctx, bson.M{"tagName": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Store) QuestionByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	if err := s.database.Collection(QuestionsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *Store) AnswerByID(ctx context.Context, id primitive.ObjectID) (*models.Answer, error) {
	var answer models.Answer
	if err := s.database.Collection(AnswersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// AnswersByUser returns every answer owned by a user, oldest first. The
// rating service rescans these to recompute the profile average.
func (s *Store) AnswersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Answer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.database.Collection(AnswersCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []models.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *Store) ProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.database.Collection(ProfilesCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) Profiles(ctx context.Context) ([]models.UserProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.database.Collection(ProfilesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Store) InsertQuestion(ctx context.Context, question *models.Question) error {
	_, err := s.database.Collection(QuestionsCollection).InsertOne(ctx, question)
	return err
}

func (s *Store) InsertAnswer(ctx context.Context, answer *models.Answer) error {
	_, err := s.database.Collection(AnswersCollection).InsertOne(ctx, answer)
	return err
}

// UpdateQuestion replaces the stored document. Documents are mutated
// read-modify-write inside a transaction, never field by field from
// independent call sites.
func (s *Store) UpdateQuestion(ctx context.Context, question *models.Question) error {
	question.UpdatedAt = time.Now()
	_, err := s.database.Collection(QuestionsCollection).ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return err
}

func (s *Store) UpdateAnswer(ctx context.Context, answer *models.Answer) error {
	answer.UpdatedAt = time.Now()
	_, err := s.database.Collection(AnswersCollection).ReplaceOne(ctx, bson.M{"_id": answer.ID}, answer)
	return err
}

func (s *Store) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	profile.UpdatedAt = time.Now()
	_, err := s.database.Collection(ProfilesCollection).ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	return err
}

// UpsertLeaderboard replaces the snapshot for its (month, year, type, tag)
// bucket, creating it on first generation.
func (s *Store) UpsertLeaderboard(ctx context.Context, board *models.Leaderboard) error {
	filter := bson.M{
		"time.month": board.Time.Month,
		"time.year":  board.Time.Year,
		"type":       board.Type,
	}
	if board.TagID != nil {
		filter["tagId"] = *board.TagID
	}
	update := bson.M{"$set": bson.M{
		"time":        board.Time,
		"type":        board.Type,
		"tagId":       board.TagID,
		"users":       board.Users,
		"generatedAt": board.GeneratedAt,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := s.database.Collection(LeaderboardsCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

func (s *Store) LeaderboardByBucket(ctx context.Context, month, year int, boardType string, tagID *primitive.ObjectID) (*models.Leaderboard, error) {
	filter := bson.M{
		"time.month": month,
		"time.year":  year,
		"type":       boardType,
	}
	if tagID != nil {
		filter["tagId"] = *tagID
	}
	var board models.Leaderboard
	if err := s.database.Collection(LeaderboardsCollection).FindOne(ctx, filter).Decode(&board); err != nil {
		return nil, err
	}
	return &board, nil
}

// DeleteExpiredUnverifiedUsers removes users that never verified their OTP
// within the grace period. Returns how many were deleted.
func (s *Store) DeleteExpiredUnverifiedUsers(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"verified":   false,
		"otpExpires": bson.M{"$lte": cutoff},
	}
	result, err := s.database.Collection(UsersCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
