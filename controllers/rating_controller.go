package controllers

import (
	"net/http"

	"querynest/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateAnswer records one rating in the answer's sliding window and
// refreshes the owner's profile average.
func RateAnswer(c *gin.Context) {
	answerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	var req struct {
		Rating *float64 `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedRating, userAvg, err := services.GetScoringService().RateAnswer(c.Request.Context(), answerID, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updatedRating": updatedRating,
		"userAvgRating": userAvg,
	})
}
