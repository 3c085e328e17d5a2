package routes

import (
	"querynest/controllers"

	"github.com/gin-gonic/gin"
)

// SetupProfileRoutes registers the profile and follow-graph endpoints.
func SetupProfileRoutes(router *gin.RouterGroup) {
	router.POST("/profiles", controllers.CreateProfile)
	router.GET("/profiles", controllers.GetAllProfiles)
	router.GET("/profiles/:id", controllers.GetProfileByID)
	router.PUT("/profiles", controllers.UpdateProfile)
	router.DELETE("/profiles/:id", controllers.DeleteProfile)

	router.POST("/follow/:userId", controllers.FollowUser)
	router.DELETE("/follow/:userId", controllers.UnfollowUser)
	router.GET("/followers/:userId", controllers.GetFollowers)
	router.GET("/following/:userId", controllers.GetFollowing)
}
