// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/constants"
	bookService "pustakaedu_backend/internals/features/library/books/service"
	authMiddleware "pustakaedu_backend/internals/middlewares/auth"
	routeDetails "pustakaedu_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, catalog bookService.CatalogClient) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (webhook payment masuk sini)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE (USER) → JWT wajib
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ADMIN → JWT + role coordinator ke atas
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles("Akses khusus pengelola", constants.CoordinatorAndAbove...),
	)

	// ===================== FEATURES =====================

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(public, private, db)

	log.Println("[INFO] Setting up LibraryRoutes...")
	routeDetails.LibraryRoutes(public, private, admin, db)

	log.Println("[INFO] Setting up PaymentRoutes...")
	routeDetails.PaymentRoutes(public, private, db, catalog)

	log.Println("[INFO] Setting up OrganizationRoutes...")
	routeDetails.OrganizationRoutes(admin, db)

	log.Println("[INFO] Setting up NotificationRoutes...")
	routeDetails.NotificationRoutes(private, db)
}
