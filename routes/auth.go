package routes

import (
	"querynest/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRouteHandler(ctx *gin.Context) {
	controllers.Register(ctx)
}

func VerifyOTPRouteHandler(ctx *gin.Context) {
	controllers.VerifyOTP(ctx)
}

func ResendOTPRouteHandler(ctx *gin.Context) {
	controllers.ResendOTP(ctx)
}

func LoginRouteHandler(ctx *gin.Context) {
	controllers.Login(ctx)
}

func ForgotPasswordRouteHandler(ctx *gin.Context) {
	controllers.RequestPasswordReset(ctx)
}

func VerifyPasscodeRouteHandler(ctx *gin.Context) {
	controllers.VerifyPasscode(ctx)
}

func ResetPasswordRouteHandler(ctx *gin.Context) {
	controllers.ResetPassword(ctx)
}
