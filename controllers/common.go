package controllers

import (
	"errors"
	"net/http"

	"querynest/config"
	"querynest/db"
	"querynest/services"

	"github.com/gin-gonic/gin"
)

var store *db.Store
var cfg *config.Config

// Init wires the controllers to the store and configuration.
func Init(s *db.Store, c *config.Config) {
	store = s
	cfg = c
}

// respondError maps a service error to an HTTP status with a structured
// body. Anything unrecognized is an internal error; the message is the
// only detail exposed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAnswerNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrLeaderboardNotFound),
		errors.Is(err, services.ErrNoProfiles):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotLiked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrInvalidTarget),
		errors.Is(err, services.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
