package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxProfileTags caps how many tag names a profile may carry.
const MaxProfileTags = 3

var ErrTooManyTags = errors.New("you can only have up to 3 tags")

// UserProfile is the per-user aggregate: point total, owned content ids,
// like memberships and the follow graph. It is one-to-one with User and is
// mutated only inside scoring transactions on the owner's behalf.
type UserProfile struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID   `bson:"userId" json:"userId"`
	ClgEmail       string               `bson:"clgEmail" json:"clgEmail"`
	BackupEmail    string               `bson:"backupEmail,omitempty" json:"backupEmail,omitempty"`
	Name           string               `bson:"name" json:"name"`
	Username       string               `bson:"username" json:"username"`
	Bio            string               `bson:"bio" json:"bio"`
	Tags           []string             `bson:"tags" json:"tags"`
	Graduation     string               `bson:"graduation,omitempty" json:"graduation,omitempty"`
	NoOfQuestions  int                  `bson:"noOfQuestions" json:"noOfQuestions"`
	NoOfAnswers    int                  `bson:"noOfAnswers" json:"noOfAnswers"`
	AvgRating      float64              `bson:"avgRating" json:"avgRating"`
	TotalPoints    int                  `bson:"totalPoints" json:"totalPoints"`
	QuestionIDs    []primitive.ObjectID `bson:"questionIds" json:"questionIds"`
	AnswerIDs      []primitive.ObjectID `bson:"answerIds" json:"answerIds"`
	Achievements   []string             `bson:"achievements" json:"achievements"`
	Followers      []primitive.ObjectID `bson:"followers" json:"followers"`
	Following      []primitive.ObjectID `bson:"following" json:"following"`
	NoOfFollowers  int                  `bson:"noOfFollowers" json:"noOfFollowers"`
	NoOfFollowing  int                  `bson:"noOfFollowing" json:"noOfFollowing"`
	ImageURL       string               `bson:"imageUrl" json:"imageUrl"`
	LikedQuestions []primitive.ObjectID `bson:"likedQuestions" json:"likedQuestions"`
	LikedAnswers   []primitive.ObjectID `bson:"likedAnswers" json:"likedAnswers"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the profile-level invariants before a write.
func (p *UserProfile) Validate() error {
	if len(p.Tags) > MaxProfileTags {
		return ErrTooManyTags
	}
	if p.TotalPoints < 0 {
		return errors.New("total points cannot be negative")
	}
	if p.AvgRating < 0 || p.AvgRating > 5 {
		return errors.New("average rating must be between 0 and 5")
	}
	return nil
}

// SyncCounts recomputes the derived counters from their backing sets.
// Stored counters are never trusted to drift on their own.
func (p *UserProfile) SyncCounts() {
	p.NoOfQuestions = len(p.QuestionIDs)
	p.NoOfAnswers = len(p.AnswerIDs)
	p.NoOfFollowers = len(p.Followers)
	p.NoOfFollowing = len(p.Following)
}
