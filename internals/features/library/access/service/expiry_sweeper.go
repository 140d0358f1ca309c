// file: internals/features/library/access/service/expiry_sweeper.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/library/access/model"
	notifModel "pustakaedu_backend/internals/features/notifications/model"
	notifService "pustakaedu_backend/internals/features/notifications/service"
)

type SweepResult struct {
	ExpiredCount  int64       `json:"expired_count"`
	AffectedUsers []uuid.UUID `json:"-"`
}

// SweepExpiredAccesses mentransisikan grant yang lewat end date ke EXPIRED.
// Transisi status, bukan delete. Aman dijalankan berulang (idempotent) dan
// bersamaan dengan read — resolver sudah mengecek window tanggal sendiri.
func SweepExpiredAccesses(db *gorm.DB, now time.Time) (*SweepResult, error) {
	result := &SweepResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Ambil user terdampak dulu untuk notifikasi setelahnya
		if err := tx.Model(&model.BookAccessModel{}).
			Where("access_status = ? AND access_end_date < ?", model.AccessStatusActive, now).
			Pluck("access_user_id", &result.AffectedUsers).Error; err != nil {
			return err
		}

		res := tx.Model(&model.BookAccessModel{}).
			Where("access_status = ? AND access_end_date < ?", model.AccessStatusActive, now).
			Updates(map[string]interface{}{
				"access_status":    model.AccessStatusExpired,
				"access_is_active": false,
			})
		if res.Error != nil {
			return res.Error
		}
		result.ExpiredCount = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SweepExpiringAccesses mengirim peringatan ACCESS_EXPIRING untuk grant aktif
// yang end date-nya jatuh di dalam window ke depan. Satu peringatan per
// access_id — dedup lewat payload notifikasi yang sudah pernah terkirim,
// jadi sweep boleh jalan berulang tanpa spam.
func SweepExpiringAccesses(db *gorm.DB, now time.Time, window time.Duration) (int, error) {
	var expiring []model.BookAccessModel
	err := db.Where("access_status = ? AND access_is_active = ?", model.AccessStatusActive, true).
		Where("access_end_date > ? AND access_end_date <= ?", now, now.Add(window)).
		Find(&expiring).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range expiring {
		a := &expiring[i]

		var already int64
		err := db.Model(&notifModel.NotificationModel{}).
			Where("notification_user_id = ? AND notification_type = ?", a.AccessUserID, notifService.TypeAccessExpiring).
			Where(datatypes.JSONQuery("notification_payload").Equals(a.AccessID.String(), "access_id")).
			Count(&already).Error
		if err != nil {
			return sent, err
		}
		if already > 0 {
			continue
		}

		notifService.Enqueue(db, a.AccessUserID, notifService.TypeAccessExpiring, map[string]interface{}{
			"access_id":  a.AccessID.String(),
			"book_id":    a.AccessBookID.String(),
			"expires_at": a.AccessEndDate,
		})
		sent++
	}
	return sent, nil
}
