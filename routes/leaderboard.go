package routes

import (
	"querynest/controllers"

	"github.com/gin-gonic/gin"
)

func GenerateLeaderboardsRouteHandler(ctx *gin.Context) {
	controllers.GenerateLeaderboards(ctx)
}

func GetLeaderboardRouteHandler(ctx *gin.Context) {
	controllers.GetLeaderboard(ctx)
}
