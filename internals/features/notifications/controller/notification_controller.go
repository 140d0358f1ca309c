// file: internals/features/notifications/controller/notification_controller.go
package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/notifications/service"
	helper "pustakaedu_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 LIST: notifikasi terbaru milik user login
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	notifs, err := service.ListForUser(ctrl.DB, userID, limit)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}
	return helper.Success(c, "OK", notifs)
}

// 🟢 MARK READ
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "notification id tidak valid")
	}

	if err := service.MarkRead(ctrl.DB, userID, notifID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal update notifikasi")
	}
	return helper.Success(c, "Notifikasi ditandai terbaca", nil)
}
