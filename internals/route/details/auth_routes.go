package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "isp392_backend/internals/features/users/auth/controller"
	"isp392_backend/internals/middlewares"
	authMiddleware "isp392_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh", ctrl.Refresh)
	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
}
