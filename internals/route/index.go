package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "isp392_backend/internals/middlewares/auth"
	routeDetails "isp392_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// Unauthenticated surface: customer menu + payment gateway webhook.
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	routeDetails.PublicMenuRoutes(public, db)
	routeDetails.PaymentWebhookRoutes(public, db)

	// Everything else sits behind JWT auth.
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting Staff routes...")
	routeDetails.StaffRoutes(private, db)

	log.Println("[INFO] Mounting Menu routes...")
	routeDetails.MenuRoutes(private, db)

	log.Println("[INFO] Mounting Kitchen routes...")
	routeDetails.KitchenRoutes(private, db)

	log.Println("[INFO] Mounting Orders routes...")
	routeDetails.OrdersRoutes(private, db)
}
