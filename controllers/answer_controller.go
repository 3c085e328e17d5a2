package controllers

import (
	"context"
	"net/http"
	"time"

	"querynest/db"
	"querynest/middlewares"
	"querynest/models"
	"querynest/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateAnswer records an answer and credits the tag's point value.
func CreateAnswer(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
		Answer     string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	answer, tag, err := services.GetScoringService().CreateAnswer(c.Request.Context(), userID, questionID, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"answer":       answer,
		"tagName":      tag.TagName,
		"pointsEarned": answer.Point,
		"ansDuration":  answer.AnsDuration,
	})
}

// GetAllAnswers lists every answer.
func GetAllAnswers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection(db.AnswersCollection).Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}
	defer cursor.Close(ctx)

	var answers []models.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode answers"})
		return
	}

	c.JSON(http.StatusOK, answers)
}

// GetAnswerByID returns one answer with its live like count.
func GetAnswerByID(c *gin.Context) {
	answerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var answer models.Answer
	err = db.GetCollection(db.AnswersCollection).FindOne(ctx, bson.M{"_id": answerID}).Decode(&answer)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer, "noOfLikes": answer.NoOfLikes()})
}

// GetAnswersByUser lists the answers a user wrote.
func GetAnswersByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection(db.AnswersCollection).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}
	defer cursor.Close(ctx)

	var answers []models.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode answers"})
		return
	}

	c.JSON(http.StatusOK, answers)
}
