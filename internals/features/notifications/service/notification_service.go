// file: internals/features/notifications/service/notification_service.go
package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/notifications/model"
)

// Jenis notifikasi yang dikonsumsi komponen email/delivery
const (
	TypePurchaseCompleted = "purchase_completed"
	TypeAccessExpiring    = "access_expiring"
	TypeAccessExpired     = "access_expired"
	TypePaymentFailed     = "payment_failed"
)

// Enqueue menulis row notifikasi. Best-effort: kegagalan hanya dicatat,
// tidak pernah membatalkan grant/transaksi pemanggil.
func Enqueue(db *gorm.DB, userID uuid.UUID, notifType string, payload map[string]interface{}) {
	n := model.NotificationModel{
		NotificationUserID:  userID,
		NotificationType:    notifType,
		NotificationPayload: datatypes.JSONMap(payload),
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[ERROR] Gagal enqueue notifikasi %s untuk user %s: %v", notifType, userID, err)
	}
}

// ListForUser — daftar notifikasi terbaru user (dipakai controller).
func ListForUser(db *gorm.DB, userID uuid.UUID, limit int) ([]model.NotificationModel, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var notifs []model.NotificationModel
	err := db.Where("notification_user_id = ?", userID).
		Order("notification_created_at desc").
		Limit(limit).
		Find(&notifs).Error
	return notifs, err
}

// MarkRead menandai satu notifikasi milik user sebagai terbaca.
func MarkRead(db *gorm.DB, userID, notificationID uuid.UUID) error {
	return db.Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notificationID, userID).
		Update("notification_is_read", true).Error
}
