package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is a named content category. TagPoint is awarded per answer to a
// question filed under this tag.
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TagName   string             `bson:"tagName" json:"tagName"`
	TagPoint  int                `bson:"tagPoint" json:"tagPoint"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
