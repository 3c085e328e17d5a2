package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines an identity record. A user is created unverified at
// registration and becomes verified after OTP confirmation.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                 string             `bson:"name" json:"name"`
	Username             string             `bson:"username" json:"username"`
	ClgEmail             string             `bson:"clgEmail" json:"clgEmail"`
	BackupEmail          string             `bson:"backupEmail,omitempty" json:"backupEmail,omitempty"`
	Password             string             `bson:"password" json:"-"`
	Verified             bool               `bson:"verified" json:"verified"`
	OTP                  string             `bson:"otp,omitempty" json:"-"`
	OTPExpires           time.Time          `bson:"otpExpires,omitempty" json:"-"`
	OTPDeletionTime      time.Time          `bson:"otpDeletionTime,omitempty" json:"-"`
	ResetPasscode        string             `bson:"resetPasscode,omitempty" json:"-"`
	ResetPasscodeExpires time.Time          `bson:"resetPasscodeExpires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
