// file: internals/route/details/notification_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "pustakaedu_backend/internals/features/notifications/controller"
)

func NotificationRoutes(private fiber.Router, db *gorm.DB) {
	ctrl := notifController.NewNotificationController(db)

	private.Get("/notifications", ctrl.List)
	private.Patch("/notifications/:id/read", ctrl.MarkRead)
}
