package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserIndexModels declares the unique indexes on the users collection.
// Username and college email are hard-unique; the backup email is unique
// only when present. With these in place a concurrent duplicate
// registration loses the insert race instead of slipping past the
// application-level check.
func UserIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "clgEmail", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "backupEmail", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
}

// EnsureIndexes creates the collection indexes, a no-op when they already
// exist.
func EnsureIndexes(ctx context.Context) error {
	_, err := GetCollection(UsersCollection).Indexes().CreateMany(ctx, UserIndexModels())
	return err
}
