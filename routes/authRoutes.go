package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/mouakos/ecommerce-api/middlewares"
	"github.com/mouakos/ecommerce-api/tokenstore"
)

func AuthRoutes(server *gin.Engine, ac *controllers.AuthController, revoked *tokenstore.Store) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", ac.Signup)
		auth.POST("/login", ac.Login)
		auth.POST("/logout", middlewares.RequireAuth(revoked), ac.Logout)
		auth.POST("/verify-email/:activationToken", ac.ActivateAccount)
		auth.POST("/forgot-password", ac.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", ac.ResetPassword)
	}
}
