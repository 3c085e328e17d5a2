package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Domain errors surfaced by the scoring and leaderboard services.
// Controllers map these to HTTP statuses.
var (
	ErrTagNotFound         = errors.New("tag not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAnswerNotFound      = errors.New("answer not found")
	ErrProfileNotFound     = errors.New("user profile not found")
	ErrLeaderboardNotFound = errors.New("leaderboard not found for this month and year")
	ErrNoProfiles          = errors.New("no users found")
	ErrAlreadyLiked        = errors.New("already liked")
	ErrNotLiked            = errors.New("not liked yet")
	ErrAlreadyFollowing    = errors.New("already following")
	ErrNotFollowing        = errors.New("not following this user")
	ErrRatingOutOfRange    = errors.New("rating must be between 0 and 5")
	ErrInvalidTarget       = errors.New("invalid like target")
	ErrInvalidAction       = errors.New("invalid like action")
)

// orNotFound translates a store miss into the matching domain error while
// letting real storage faults propagate untouched.
func orNotFound(err, domainErr error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainErr
	}
	return err
}
