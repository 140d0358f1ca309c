// file: internals/features/payment/service/subscription_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/payment/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// CancelSubscription mematikan perpanjangan otomatis dan menandai canceled.
// Akses periode berjalan TIDAK dicabut — user sudah bayar periode ini,
// grant-nya tetap valid sampai end date lalu kadaluarsa lewat sweeper.
func CancelSubscription(db *gorm.DB, userID, subscriptionID uuid.UUID) error {
	var sub model.SubscriptionModel
	if err := db.Where("subscription_id = ? AND subscription_user_id = ?", subscriptionID, userID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return err
	}

	if sub.SubscriptionStatus == model.SubscriptionCanceled {
		return nil
	}
	if sub.SubscriptionStatus == model.SubscriptionExpired {
		return fmt.Errorf("%w: langganan sudah berakhir", errs.ErrValidation)
	}

	return db.Model(&model.SubscriptionModel{}).
		Where("subscription_id = ?", sub.SubscriptionID).
		Updates(map[string]interface{}{
			"subscription_status":            model.SubscriptionCanceled,
			"subscription_auto_renew":        false,
			"subscription_next_billing_date": nil,
		}).Error
}

// SweepLapsedSubscriptions menandai langganan yang lewat end date sebagai
// expired (canceled yang habis masa berlakunya juga). Idempotent.
func SweepLapsedSubscriptions(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&model.SubscriptionModel{}).
		Where("subscription_status IN ?", []model.SubscriptionStatus{model.SubscriptionActive, model.SubscriptionCanceled}).
		Where("subscription_end_date < ?", now).
		Update("subscription_status", model.SubscriptionExpired)
	return res.RowsAffected, res.Error
}

// ListForUser — langganan milik user (dipakai controller).
func ListForUser(db *gorm.DB, userID uuid.UUID) ([]model.SubscriptionModel, error) {
	var subs []model.SubscriptionModel
	err := db.Where("subscription_user_id = ?", userID).
		Order("subscription_created_at desc").
		Find(&subs).Error
	return subs, err
}
