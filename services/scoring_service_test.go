package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionCreditsAskAward(t *testing.T) {
	store := newMemStore()
	tag := store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "How do goroutines get scheduled?")
	require.NoError(t, err)
	require.NotNil(t, question)

	assert.Equal(t, tag.ID, question.TagID)
	assert.Equal(t, asker.UserID, question.UserID)

	stored, err := store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.AnswerIDs)

	profile, err := store.ProfileByUserID(context.Background(), asker.UserID)
	require.NoError(t, err)
	assert.Equal(t, 5, profile.TotalPoints)
	assert.Equal(t, 1, profile.NoOfQuestions)
	assert.Contains(t, profile.QuestionIDs, question.ID)
}

func TestCreateQuestionUnknownTag(t *testing.T) {
	store := newMemStore()
	asker := store.seedProfile("Utkarsh")

	svc := NewScoringService(store, 5)
	_, err := svc.CreateQuestion(context.Background(), asker.UserID, "nosuchtag", "Does this tag exist?")
	assert.ErrorIs(t, err, ErrTagNotFound)
	assert.Empty(t, store.questions)
}

func TestCreateQuestionWithoutProfileRollsBack(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)

	svc := NewScoringService(store, 5)
	_, err := svc.CreateQuestion(context.Background(), primitive.NewObjectID(), "golang", "Who am I?")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	// The insert that ran before the profile lookup must not survive.
	assert.Empty(t, store.questions)
}

func TestCreateAnswerCreditsTagPoint(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "What does select{} do?")
	require.NoError(t, err)

	answer, tag, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "Blocks forever.")
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.TagName)
	assert.Equal(t, 10, answer.Point)

	stored, err := store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.AnswerIDs, answer.ID)

	profile, err := store.ProfileByUserID(context.Background(), answerer.UserID)
	require.NoError(t, err)
	assert.Equal(t, 10, profile.TotalPoints)
	assert.Equal(t, 1, profile.NoOfAnswers)
	assert.Contains(t, profile.AnswerIDs, answer.ID)

	// Scenario from the product brief: 5 for asking, 10 for answering.
	askerProfile, err := store.ProfileByUserID(context.Background(), asker.UserID)
	require.NoError(t, err)
	assert.Equal(t, 5, askerProfile.TotalPoints)
}

func TestCreateAnswerSnapshotsPointAtCreation(t *testing.T) {
	store := newMemStore()
	tag := store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Why is nil not always nil?")
	require.NoError(t, err)

	first, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "Interface values.")
	require.NoError(t, err)

	// Repricing the tag must not touch already-earned points.
	store.tags[tag.ID].TagPoint = 3

	second, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "More detail.")
	require.NoError(t, err)
	assert.Equal(t, 3, second.Point)

	storedFirst, err := store.AnswerByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, storedFirst.Point)

	profile, err := store.ProfileByUserID(context.Background(), answerer.UserID)
	require.NoError(t, err)
	assert.Equal(t, 13, profile.TotalPoints)
}

func TestCreateAnswerRecordsDuration(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "What year is it?")
	require.NoError(t, err)

	// Backdate the question so the answer arrives 90 seconds later.
	stored, err := store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	stored.CreatedAt = time.Now().Add(-90 * time.Second)
	require.NoError(t, store.UpdateQuestion(context.Background(), stored))

	answer, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "2026.")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, answer.AnsDuration, int64(90))
	assert.LessOrEqual(t, answer.AnsDuration, int64(92))
}

func TestCreateAnswerUnknownQuestion(t *testing.T) {
	store := newMemStore()
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	_, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, primitive.NewObjectID(), "Answering nothing.")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestCreateAnswerRollsBackOnProfileFailure(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Will this commit?")
	require.NoError(t, err)

	injected := errors.New("write conflict")
	store.failures["UpdateProfile"] = injected

	_, _, err = svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "It must not.")
	assert.ErrorIs(t, err, injected)

	// Nothing from the failed unit may remain visible.
	assert.Empty(t, store.answers)
	stored, err := store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.AnswerIDs)

	profile, err := store.ProfileByUserID(context.Background(), answerer.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.TotalPoints)
	assert.Empty(t, profile.AnswerIDs)
}

func TestToggleLikeMirrorsQuestionMembership(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	liker := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Worth a like?")
	require.NoError(t, err)

	count, err := svc.ToggleLike(context.Background(), liker.UserID, question.ID, TargetQuestion, ActionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.Likes, liker.UserID)

	profile, err := store.ProfileByUserID(context.Background(), liker.UserID)
	require.NoError(t, err)
	assert.Contains(t, profile.LikedQuestions, question.ID)

	// Second like is rejected and the count stays put.
	_, err = svc.ToggleLike(context.Background(), liker.UserID, question.ID, TargetQuestion, ActionLike)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
	stored, err = store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.NoOfLikes())

	count, err = svc.ToggleLike(context.Background(), liker.UserID, question.ID, TargetQuestion, ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	stored, err = store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Likes, liker.UserID)
	profile, err = store.ProfileByUserID(context.Background(), liker.UserID)
	require.NoError(t, err)
	assert.NotContains(t, profile.LikedQuestions, question.ID)

	_, err = svc.ToggleLike(context.Background(), liker.UserID, question.ID, TargetQuestion, ActionUnlike)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestToggleLikeMirrorsAnswerMembership(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Like my answer?")
	require.NoError(t, err)
	answer, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "Sure.")
	require.NoError(t, err)

	count, err := svc.ToggleLike(context.Background(), asker.UserID, answer.ID, TargetAnswer, ActionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := store.AnswerByID(context.Background(), answer.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.Likes, asker.UserID)

	profile, err := store.ProfileByUserID(context.Background(), asker.UserID)
	require.NoError(t, err)
	assert.Contains(t, profile.LikedAnswers, answer.ID)
}

func TestToggleLikeRejectsBadInput(t *testing.T) {
	store := newMemStore()
	liker := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	_, err := svc.ToggleLike(context.Background(), liker.UserID, primitive.NewObjectID(), TargetQuestion, "boost")
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = svc.ToggleLike(context.Background(), liker.UserID, primitive.NewObjectID(), "comment", ActionLike)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.ToggleLike(context.Background(), liker.UserID, primitive.NewObjectID(), TargetQuestion, ActionLike)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestToggleLikeRollsBackOnProfileFailure(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	liker := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Half a like?")
	require.NoError(t, err)

	injected := errors.New("write conflict")
	store.failures["UpdateProfile"] = injected

	_, err = svc.ToggleLike(context.Background(), liker.UserID, question.ID, TargetQuestion, ActionLike)
	assert.ErrorIs(t, err, injected)

	// Neither side of the mirror moved.
	stored, err := store.QuestionByID(context.Background(), question.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
	profile, err := store.ProfileByUserID(context.Background(), liker.UserID)
	require.NoError(t, err)
	assert.Empty(t, profile.LikedQuestions)
}

func TestRateAnswerEvictsOldestPastWindow(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Rate me.")
	require.NoError(t, err)
	answer, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "Rated.")
	require.NoError(t, err)

	for _, r := range []float64{1, 2, 3, 4, 5} {
		_, _, err = svc.RateAnswer(context.Background(), answer.ID, r)
		require.NoError(t, err)
	}

	updated, userAvg, err := svc.RateAnswer(context.Background(), answer.ID, 0)
	require.NoError(t, err)

	stored, err := store.AnswerByID(context.Background(), answer.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4, 5, 0}, stored.Ratings)
	assert.InDelta(t, 2.8, updated, 1e-9)

	// The owner has a single rated answer, so the profile average tracks it.
	assert.InDelta(t, 2.8, userAvg, 1e-9)
	profile, err := store.ProfileByUserID(context.Background(), answerer.UserID)
	require.NoError(t, err)
	assert.InDelta(t, 2.8, profile.AvgRating, 1e-9)
}

func TestRateAnswerAveragesAcrossOwnersAnswers(t *testing.T) {
	store := newMemStore()
	store.seedTag("golang", 10)
	asker := store.seedProfile("Utkarsh")
	answerer := store.seedProfile("Vaidehi")

	svc := NewScoringService(store, 5)
	question, err := svc.CreateQuestion(context.Background(), asker.UserID, "golang", "Two answers, one owner.")
	require.NoError(t, err)

	first, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "First.")
	require.NoError(t, err)
	second, _, err := svc.CreateAnswer(context.Background(), answerer.UserID, question.ID, "Second.")
	require.NoError(t, err)

	_, _, err = svc.RateAnswer(context.Background(), first.ID, 4)
	require.NoError(t, err)
	_, userAvg, err := svc.RateAnswer(context.Background(), second.ID, 2)
	require.NoError(t, err)

	// (4 + 2) / 2 answers.
	assert.InDelta(t, 3.0, userAvg, 1e-9)
}

func TestRateAnswerRejectsOutOfRange(t *testing.T) {
	store := newMemStore()
	svc := NewScoringService(store, 5)

	_, _, err := svc.RateAnswer(context.Background(), primitive.NewObjectID(), 5.1)
	assert.ErrorIs(t, err, ErrRatingOutOfRange)
	_, _, err = svc.RateAnswer(context.Background(), primitive.NewObjectID(), -0.1)
	assert.ErrorIs(t, err, ErrRatingOutOfRange)

	_, _, err = svc.RateAnswer(context.Background(), primitive.NewObjectID(), 3)
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestPushRatingKeepsWindowBounded(t *testing.T) {
	var window []float64
	for i := 1; i <= 20; i++ {
		window = pushRating(window, float64(i))
		assert.LessOrEqual(t, len(window), 5)
	}
	assert.Equal(t, []float64{16, 17, 18, 19, 20}, window)
}

func TestMeanOfEmptyWindow(t *testing.T) {
	assert.Equal(t, 0.0, meanOf(nil))
	assert.InDelta(t, 2.5, meanOf([]float64{2, 3}), 1e-9)
}
