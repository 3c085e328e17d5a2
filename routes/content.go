package routes

import (
	"querynest/controllers"

	"github.com/gin-gonic/gin"
)

// SetupQuestionRoutes registers the question endpoints.
func SetupQuestionRoutes(router *gin.RouterGroup) {
	router.POST("/questions", controllers.CreateQuestion)
	router.GET("/questions", controllers.GetAllQuestions)
	router.GET("/questions/:id", controllers.GetQuestionByID)
	router.GET("/questions/user/:userId", controllers.GetQuestionsByUser)
	router.POST("/questions/:id/like", controllers.ToggleQuestionLike)
}

// SetupAnswerRoutes registers the answer endpoints.
func SetupAnswerRoutes(router *gin.RouterGroup) {
	router.POST("/answers", controllers.CreateAnswer)
	router.GET("/answers", controllers.GetAllAnswers)
	router.GET("/answers/:id", controllers.GetAnswerByID)
	router.GET("/answers/user/:userId", controllers.GetAnswersByUser)
	router.POST("/answers/:id/like", controllers.ToggleAnswerLike)
	router.POST("/answers/:id/rate", controllers.RateAnswer)
}

// SetupTagRoutes registers the tag catalog endpoints.
func SetupTagRoutes(router *gin.RouterGroup) {
	router.POST("/tags", controllers.CreateTag)
	router.GET("/tags", controllers.GetAllTags)
	router.GET("/tags/:id", controllers.GetTagByID)
	router.PUT("/tags/:id", controllers.UpdateTag)
	router.DELETE("/tags/:id", controllers.DeleteTag)
}
