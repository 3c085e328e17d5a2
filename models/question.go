package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is owned by a user and always references an existing tag.
type Question struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"`
	TagID     primitive.ObjectID   `bson:"tagId" json:"tagId"`
	Question  string               `bson:"question" json:"question"`
	AnswerIDs []primitive.ObjectID `bson:"answerIds" json:"answerIds"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NoOfLikes is always the live size of the like set.
func (q *Question) NoOfLikes() int {
	return len(q.Likes)
}
