package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingWindowSize bounds the sliding window of most recent ratings kept
// per answer. The oldest value is evicted once the window is full.
const RatingWindowSize = 5

// Answer belongs to a question. Point is a snapshot of the tag's point
// value at creation time and never tracks later tag edits. AnsDuration is
// the whole-second gap between the question and the answer, frozen at
// creation.
type Answer struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	QuestionID  primitive.ObjectID   `bson:"questionId" json:"questionId"`
	Answer      string               `bson:"answer" json:"answer"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Ratings     []float64            `bson:"ratings" json:"ratings"`
	Rating      float64              `bson:"rating" json:"rating"`
	Point       int                  `bson:"point" json:"point"`
	AnsDuration int64                `bson:"ansDuration" json:"ansDuration"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NoOfLikes is always the live size of the like set.
func (a *Answer) NoOfLikes() int {
	return len(a.Likes)
}
