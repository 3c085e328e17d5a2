package controllers

import (
	"net/http"
	"strconv"

	"querynest/services"

	"github.com/gin-gonic/gin"
)

// GenerateLeaderboards rebuilds the overall and per-tag boards for a
// month/year bucket, defaulting to the current one.
func GenerateLeaderboards(c *gin.Context) {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	// Body is optional; an empty body means the current bucket.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := services.GetLeaderboardService().GenerateAll(c.Request.Context(), req.Month, req.Year); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All leaderboards updated successfully"})
}

// GetLeaderboard returns a ranked bucket, overall by default or tag-wise
// when tagName is supplied.
func GetLeaderboard(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	tagName := c.Query("tagName")

	board, err := services.GetLeaderboardService().Get(c.Request.Context(), month, year, tagName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": board.Users, "time": board.Time, "type": board.Type})
}
