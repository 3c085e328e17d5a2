package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leaderboard kinds.
const (
	LeaderboardOverall = "overall"
	LeaderboardTagWise = "tag-wise"
)

// LeaderboardTime is the calendar bucket a snapshot belongs to.
type LeaderboardTime struct {
	Month int `bson:"month" json:"month"`
	Year  int `bson:"year" json:"year"`
}

// LeaderboardEntry is one ranked user in a snapshot.
type LeaderboardEntry struct {
	UserID primitive.ObjectID   `bson:"userId" json:"userId"`
	Points int                  `bson:"points" json:"points"`
	Rank   int                  `bson:"rank" json:"rank"`
	Tags   []primitive.ObjectID `bson:"tags,omitempty" json:"tags,omitempty"`
}

// Leaderboard is a ranked snapshot keyed by (month, year, type, tagId).
// A generation run replaces the whole user list; entries are never patched
// in place.
type Leaderboard struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Time        LeaderboardTime     `bson:"time" json:"time"`
	Type        string              `bson:"type" json:"type"`
	TagID       *primitive.ObjectID `bson:"tagId,omitempty" json:"tagId,omitempty"`
	Users       []LeaderboardEntry  `bson:"users" json:"users"`
	GeneratedAt time.Time           `bson:"generatedAt" json:"generatedAt"`
}
