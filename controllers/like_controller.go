package controllers

import (
	"net/http"

	"querynest/middlewares"
	"querynest/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToggleQuestionLike likes or unlikes a question for the caller.
func ToggleQuestionLike(c *gin.Context) {
	toggleLike(c, services.TargetQuestion)
}

// ToggleAnswerLike likes or unlikes an answer for the caller.
func ToggleAnswerLike(c *gin.Context) {
	toggleLike(c, services.TargetAnswer)
}

func toggleLike(c *gin.Context, target string) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + target + " ID"})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	likeCount, err := services.GetScoringService().ToggleLike(c.Request.Context(), userID, targetID, target, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Action " + req.Action + " applied",
		"noOfLikes": likeCount,
	})
}
