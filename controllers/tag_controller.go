package controllers

import (
	"context"
	"net/http"
	"time"

	"querynest/db"
	"querynest/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTag creates a tag with its point value. Gated by the admin
// credentials from config.
func CreateTag(c *gin.Context) {
	var req struct {
		TagName  string `json:"tagName" binding:"required"`
		TagPoint *int   `json:"tagPoint" binding:"required"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != cfg.Admin.Username || req.Password != cfg.Admin.Password {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid credentials for Admin Access"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tags := db.GetCollection(db.TagsCollection)

	var existing models.Tag
	err := tags.FindOne(ctx, bson.M{"tagName": req.TagName}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	tag := models.Tag{
		ID:        primitive.NewObjectID(),
		TagName:   req.TagName,
		TagPoint:  *req.TagPoint,
		CreatedAt: time.Now(),
	}
	if _, err := tags.InsertOne(ctx, tag); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// GetAllTags lists every tag.
func GetAllTags(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection(db.TagsCollection).Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode tags"})
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTagByID fetches one tag.
func GetTagByID(c *gin.Context) {
	tagID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tag models.Tag
	err = db.GetCollection(db.TagsCollection).FindOne(ctx, bson.M{"_id": tagID}).Decode(&tag)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	c.JSON(http.StatusOK, tag)
}

// UpdateTag edits a tag's point value. Answers keep the point they
// snapshotted at creation; edits only affect future answers.
func UpdateTag(c *gin.Context) {
	tagID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var req struct {
		TagPoint *int `json:"tagPoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := db.GetCollection(db.TagsCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": tagID},
		bson.M{"$set": bson.M{"tagPoint": *req.TagPoint}},
	)
	if result.Err() != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag updated successfully"})
}

// DeleteTag removes a tag.
func DeleteTag(c *gin.Context) {
	tagID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.GetCollection(db.TagsCollection).DeleteOne(ctx, bson.M{"_id": tagID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
