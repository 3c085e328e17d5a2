package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"querynest/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memStore is an in-memory Store double. WithTransaction snapshots the
// whole state and restores it when the callback fails, which models the
// all-or-nothing behavior the services rely on and gives tests a place to
// inject failures mid-transaction.
type memStore struct {
	tags     map[primitive.ObjectID]*models.Tag
	tagOrder []primitive.ObjectID

	questions map[primitive.ObjectID]*models.Question

	answers     map[primitive.ObjectID]*models.Answer
	answerOrder []primitive.ObjectID

	profiles     map[primitive.ObjectID]*models.UserProfile // keyed by user id
	profileOrder []primitive.ObjectID

	users     map[primitive.ObjectID]*models.User
	userOrder []primitive.ObjectID

	boards map[string]*models.Leaderboard

	// failures maps a method name to an error returned (once) on its
	// next invocation.
	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		tags:      map[primitive.ObjectID]*models.Tag{},
		questions: map[primitive.ObjectID]*models.Question{},
		answers:   map[primitive.ObjectID]*models.Answer{},
		profiles:  map[primitive.ObjectID]*models.UserProfile{},
		users:     map[primitive.ObjectID]*models.User{},
		boards:    map[string]*models.Leaderboard{},
		failures:  map[string]error{},
	}
}

func (m *memStore) failOnce(op string) error {
	if err, ok := m.failures[op]; ok {
		delete(m.failures, op)
		return err
	}
	return nil
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	return append([]primitive.ObjectID(nil), ids...)
}

func copyQuestion(q *models.Question) *models.Question {
	c := *q
	c.AnswerIDs = copyIDs(q.AnswerIDs)
	c.Likes = copyIDs(q.Likes)
	return &c
}

func copyAnswer(a *models.Answer) *models.Answer {
	c := *a
	c.Likes = copyIDs(a.Likes)
	c.Ratings = append([]float64(nil), a.Ratings...)
	return &c
}

func copyProfile(p *models.UserProfile) *models.UserProfile {
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	c.QuestionIDs = copyIDs(p.QuestionIDs)
	c.AnswerIDs = copyIDs(p.AnswerIDs)
	c.Achievements = append([]string(nil), p.Achievements...)
	c.Followers = copyIDs(p.Followers)
	c.Following = copyIDs(p.Following)
	c.LikedQuestions = copyIDs(p.LikedQuestions)
	c.LikedAnswers = copyIDs(p.LikedAnswers)
	return &c
}

func copyBoard(b *models.Leaderboard) *models.Leaderboard {
	c := *b
	c.Users = make([]models.LeaderboardEntry, len(b.Users))
	for i, entry := range b.Users {
		entry.Tags = copyIDs(entry.Tags)
		c.Users[i] = entry
	}
	return &c
}

func (m *memStore) clone() *memStore {
	c := newMemStore()
	for id, tag := range m.tags {
		t := *tag
		c.tags[id] = &t
	}
	c.tagOrder = copyIDs(m.tagOrder)
	for id, q := range m.questions {
		c.questions[id] = copyQuestion(q)
	}
	for id, a := range m.answers {
		c.answers[id] = copyAnswer(a)
	}
	c.answerOrder = copyIDs(m.answerOrder)
	for id, p := range m.profiles {
		c.profiles[id] = copyProfile(p)
	}
	c.profileOrder = copyIDs(m.profileOrder)
	for id, u := range m.users {
		user := *u
		c.users[id] = &user
	}
	c.userOrder = copyIDs(m.userOrder)
	for key, b := range m.boards {
		c.boards[key] = copyBoard(b)
	}
	return c
}

func (m *memStore) restore(snapshot *memStore) {
	m.tags = snapshot.tags
	m.tagOrder = snapshot.tagOrder
	m.questions = snapshot.questions
	m.answers = snapshot.answers
	m.answerOrder = snapshot.answerOrder
	m.profiles = snapshot.profiles
	m.profileOrder = snapshot.profileOrder
	m.users = snapshot.users
	m.userOrder = snapshot.userOrder
	m.boards = snapshot.boards
}

func (m *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := m.clone()
	if err := fn(ctx); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

func (m *memStore) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	for _, id := range m.tagOrder {
		if strings.EqualFold(m.tags[id].TagName, name) {
			t := *m.tags[id]
			return &t, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memStore) TagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error) {
	tag, ok := m.tags[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	t := *tag
	return &t, nil
}

func (m *memStore) TagsByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	var out []models.Tag
	for _, id := range m.tagOrder {
		for _, name := range names {
			if m.tags[id].TagName == name {
				out = append(out, *m.tags[id])
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) QuestionByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyQuestion(q), nil
}

func (m *memStore) AnswerByID(ctx context.Context, id primitive.ObjectID) (*models.Answer, error) {
	a, ok := m.answers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyAnswer(a), nil
}

func (m *memStore) AnswersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Answer, error) {
	var out []models.Answer
	for _, id := range m.answerOrder {
		if m.answers[id].UserID == userID {
			out = append(out, *copyAnswer(m.answers[id]))
		}
	}
	return out, nil
}

func (m *memStore) ProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyProfile(p), nil
}

func (m *memStore) Profiles(ctx context.Context) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, userID := range m.profileOrder {
		out = append(out, *copyProfile(m.profiles[userID]))
	}
	return out, nil
}

func (m *memStore) InsertQuestion(ctx context.Context, question *models.Question) error {
	if err := m.failOnce("InsertQuestion"); err != nil {
		return err
	}
	m.questions[question.ID] = copyQuestion(question)
	return nil
}

func (m *memStore) InsertAnswer(ctx context.Context, answer *models.Answer) error {
	if err := m.failOnce("InsertAnswer"); err != nil {
		return err
	}
	m.answers[answer.ID] = copyAnswer(answer)
	m.answerOrder = append(m.answerOrder, answer.ID)
	return nil
}

func (m *memStore) UpdateQuestion(ctx context.Context, question *models.Question) error {
	if err := m.failOnce("UpdateQuestion"); err != nil {
		return err
	}
	if _, ok := m.questions[question.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.questions[question.ID] = copyQuestion(question)
	return nil
}

func (m *memStore) UpdateAnswer(ctx context.Context, answer *models.Answer) error {
	if err := m.failOnce("UpdateAnswer"); err != nil {
		return err
	}
	if _, ok := m.answers[answer.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.answers[answer.ID] = copyAnswer(answer)
	return nil
}

func (m *memStore) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := m.failOnce("UpdateProfile"); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	if _, ok := m.profiles[profile.UserID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

func boardKey(month, year int, boardType string, tagID *primitive.ObjectID) string {
	tag := ""
	if tagID != nil {
		tag = tagID.Hex()
	}
	return fmt.Sprintf("%d-%d-%s-%s", month, year, boardType, tag)
}

func (m *memStore) UpsertLeaderboard(ctx context.Context, board *models.Leaderboard) error {
	if err := m.failOnce("UpsertLeaderboard"); err != nil {
		return err
	}
	m.boards[boardKey(board.Time.Month, board.Time.Year, board.Type, board.TagID)] = copyBoard(board)
	return nil
}

func (m *memStore) LeaderboardByBucket(ctx context.Context, month, year int, boardType string, tagID *primitive.ObjectID) (*models.Leaderboard, error) {
	board, ok := m.boards[boardKey(month, year, boardType, tagID)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyBoard(board), nil
}

func (m *memStore) DeleteExpiredUnverifiedUsers(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	var kept []primitive.ObjectID
	for _, id := range m.userOrder {
		user := m.users[id]
		if !user.Verified && !user.OTPExpires.IsZero() && !user.OTPExpires.After(cutoff) {
			delete(m.users, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	m.userOrder = kept
	return deleted, nil
}

// Seeding helpers shared across the service tests.

func (m *memStore) seedTag(name string, point int) *models.Tag {
	tag := &models.Tag{
		ID:        primitive.NewObjectID(),
		TagName:   name,
		TagPoint:  point,
		CreatedAt: time.Now(),
	}
	m.tags[tag.ID] = tag
	m.tagOrder = append(m.tagOrder, tag.ID)
	return tag
}

func (m *memStore) seedProfile(name string, tags ...string) *models.UserProfile {
	userID := primitive.NewObjectID()
	profile := &models.UserProfile{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Name:           name,
		Username:       strings.ToLower(name),
		Tags:           tags,
		QuestionIDs:    []primitive.ObjectID{},
		AnswerIDs:      []primitive.ObjectID{},
		Achievements:   []string{},
		Followers:      []primitive.ObjectID{},
		Following:      []primitive.ObjectID{},
		LikedQuestions: []primitive.ObjectID{},
		LikedAnswers:   []primitive.ObjectID{},
		CreatedAt:      time.Now(),
	}
	m.profiles[userID] = profile
	m.profileOrder = append(m.profileOrder, userID)
	return profile
}

func (m *memStore) seedUser(name string, verified bool, otpExpires time.Time) *models.User {
	user := &models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Username:   strings.ToLower(name),
		ClgEmail:   strings.ToLower(name) + "@college.edu",
		Verified:   verified,
		OTPExpires: otpExpires,
		CreatedAt:  time.Now(),
	}
	m.users[user.ID] = user
	m.userOrder = append(m.userOrder, user.ID)
	return user
}
