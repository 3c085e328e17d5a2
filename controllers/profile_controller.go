package controllers

import (
	"context"
	"net/http"
	"time"

	"querynest/db"
	"querynest/models"
	"querynest/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateProfile creates the one-to-one profile for a registered user.
func CreateProfile(c *gin.Context) {
	var req struct {
		UserID      string   `json:"userId" binding:"required"`
		Bio         string   `json:"bio" binding:"required"`
		Tags        []string `json:"tags"`
		Graduation  string   `json:"graduation"`
		BackupEmail string   `json:"backupEmail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if len(req.Tags) > models.MaxProfileTags {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrTooManyTags.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	profiles := db.GetCollection(db.ProfilesCollection)

	// Unique-field conflicts: one profile per user, unique username and
	// backup email across profiles.
	conflictFilter := []bson.M{
		{"userId": userID},
		{"username": user.Username},
	}
	if req.BackupEmail != "" {
		conflictFilter = append(conflictFilter, bson.M{"backupEmail": req.BackupEmail})
	}
	var existing models.UserProfile
	err = profiles.FindOne(ctx, bson.M{"$or": conflictFilter}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Profile already exists or unique field is already in use"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	now := time.Now()
	profile := models.UserProfile{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		ClgEmail:       user.ClgEmail,
		BackupEmail:    req.BackupEmail,
		Name:           user.Name,
		Username:       user.Username,
		Bio:            req.Bio,
		Tags:           req.Tags,
		Graduation:     req.Graduation,
		QuestionIDs:    []primitive.ObjectID{},
		AnswerIDs:      []primitive.ObjectID{},
		Achievements:   []string{},
		Followers:      []primitive.ObjectID{},
		Following:      []primitive.ObjectID{},
		LikedQuestions: []primitive.ObjectID{},
		LikedAnswers:   []primitive.ObjectID{},
		ImageURL:       utils.GenerateImageURL(user.Name),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if profile.Tags == nil {
		profile.Tags = []string{}
	}

	if _, err := profiles.InsertOne(ctx, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User profile created successfully!", "userProfile": profile})
}

// GetAllProfiles lists every profile.
func GetAllProfiles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection(db.ProfilesCollection).Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profiles"})
		return
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode profiles"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetProfileByID fetches one profile by its document id.
func GetProfileByID(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var profile models.UserProfile
	err = db.GetCollection(db.ProfilesCollection).FindOne(ctx, bson.M{"_id": profileID}).Decode(&profile)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the mutable profile fields for the caller.
func UpdateProfile(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Bio         *string  `json:"bio"`
		Tags        []string `json:"tags"`
		Graduation  *string  `json:"graduation"`
		BackupEmail *string  `json:"backupEmail"`
		ImageURL    *string  `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Tags) > models.MaxProfileTags {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrTooManyTags.Error()})
		return
	}

	fields := bson.M{}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if req.Graduation != nil {
		fields["graduation"] = *req.Graduation
	}
	if req.BackupEmail != nil {
		fields["backupEmail"] = *req.BackupEmail
	}
	if req.ImageURL != nil {
		fields["imageUrl"] = *req.ImageURL
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := db.GetCollection(db.ProfilesCollection).FindOneAndUpdate(
		ctx,
		bson.M{"clgEmail": email},
		bson.M{"$set": fields},
	)
	if result.Err() != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// DeleteProfile removes a profile by id.
func DeleteProfile(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection(db.ProfilesCollection).DeleteOne(ctx, bson.M{"_id": profileID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
