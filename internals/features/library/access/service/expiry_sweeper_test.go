// file: internals/features/library/access/service/expiry_sweeper_test.go
package service

import (
	"testing"
	"time"

	"pustakaedu_backend/internals/features/library/access/model"
	notificationModel "pustakaedu_backend/internals/features/notifications/model"
	notifService "pustakaedu_backend/internals/features/notifications/service"
)

func TestSweepExpiredAccesses(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	u1 := seedUser(t, db, nil)
	u2 := seedUser(t, db, nil)
	book := seedBook(t, db, "book-sweep", false)

	// Satu lewat end date, satu masih valid
	stale := seedAccess(t, db, u1.UserID, book.BookID, model.AccessStatusActive, now.AddDate(0, -2, 0), now.AddDate(0, 0, -1))
	fresh := seedAccess(t, db, u2.UserID, book.BookID, model.AccessStatusActive, now.AddDate(0, -1, 0), now.AddDate(0, 1, 0))

	result, err := SweepExpiredAccesses(db, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.ExpiredCount != 1 {
		t.Fatalf("expired = %d, want 1", result.ExpiredCount)
	}
	if len(result.AffectedUsers) != 1 || result.AffectedUsers[0] != u1.UserID {
		t.Fatalf("affected = %v, want [%s]", result.AffectedUsers, u1.UserID)
	}

	var row model.BookAccessModel
	if err := db.Where("access_id = ?", stale.AccessID).First(&row).Error; err != nil {
		t.Fatalf("reload stale: %v", err)
	}
	if row.AccessStatus != model.AccessStatusExpired || row.AccessIsActive {
		t.Fatalf("stale row = %+v, want expired", row)
	}

	var freshRow model.BookAccessModel
	if err := db.Where("access_id = ?", fresh.AccessID).First(&freshRow).Error; err != nil {
		t.Fatalf("reload fresh: %v", err)
	}
	if freshRow.AccessStatus != model.AccessStatusActive {
		t.Fatalf("fresh row ikut tersapu: %+v", freshRow)
	}

	// Idempotent: jalankan lagi → tidak ada yang berubah
	again, err := SweepExpiredAccesses(db, now)
	if err != nil {
		t.Fatalf("sweep kedua: %v", err)
	}
	if again.ExpiredCount != 0 {
		t.Fatalf("sweep kedua expired = %d, want 0", again.ExpiredCount)
	}
}

func TestSweepDoesNotTouchRevoked(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	user := seedUser(t, db, nil)
	book := seedBook(t, db, "book-sweep-revoked", false)
	revoked := seedAccess(t, db, user.UserID, book.BookID, model.AccessStatusRevoked, now.AddDate(0, -2, 0), now.AddDate(0, 0, -1))

	result, err := SweepExpiredAccesses(db, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.ExpiredCount != 0 {
		t.Fatalf("expired = %d, want 0", result.ExpiredCount)
	}

	var row model.BookAccessModel
	if err := db.Where("access_id = ?", revoked.AccessID).First(&row).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.AccessStatus != model.AccessStatusRevoked {
		t.Fatalf("status revoked berubah jadi %s", row.AccessStatus)
	}
}

func TestSweepExpiringAccessesSendsWarningOnce(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	window := 7 * 24 * time.Hour

	uSoon := seedUser(t, db, nil)
	uFar := seedUser(t, db, nil)
	uGone := seedUser(t, db, nil)
	book := seedBook(t, db, "book-expiring", false)

	// Habis dalam 3 hari → dapat peringatan
	soon := seedAccess(t, db, uSoon.UserID, book.BookID, model.AccessStatusActive, now.AddDate(0, -1, 0), now.AddDate(0, 0, 3))
	// Habis 2 bulan lagi → di luar window
	seedAccess(t, db, uFar.UserID, book.BookID, model.AccessStatusActive, now.AddDate(0, -1, 0), now.AddDate(0, 2, 0))
	// Sudah lewat → bukan "hampir habis", itu urusan sweep expired
	seedAccess(t, db, uGone.UserID, book.BookID, model.AccessStatusActive, now.AddDate(0, -2, 0), now.AddDate(0, 0, -1))

	sent, err := SweepExpiringAccesses(db, now, window)
	if err != nil {
		t.Fatalf("sweep expiring: %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}

	var notifs []notificationModel.NotificationModel
	if err := db.Where("notification_type = ?", notifService.TypeAccessExpiring).Find(&notifs).Error; err != nil {
		t.Fatalf("load notifs: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("notif rows = %d, want 1", len(notifs))
	}
	if notifs[0].NotificationUserID != uSoon.UserID {
		t.Fatalf("notif untuk user %s, want %s", notifs[0].NotificationUserID, uSoon.UserID)
	}
	if got := notifs[0].NotificationPayload["access_id"]; got != soon.AccessID.String() {
		t.Fatalf("payload access_id = %v, want %s", got, soon.AccessID)
	}

	// Jalankan lagi: peringatan untuk access yang sama tidak terkirim dua kali
	sent, err = SweepExpiringAccesses(db, now, window)
	if err != nil {
		t.Fatalf("sweep expiring kedua: %v", err)
	}
	if sent != 0 {
		t.Fatalf("sweep kedua sent = %d, want 0", sent)
	}

	var total int64
	if err := db.Model(&notificationModel.NotificationModel{}).
		Where("notification_type = ?", notifService.TypeAccessExpiring).
		Count(&total).Error; err != nil {
		t.Fatalf("count notifs: %v", err)
	}
	if total != 1 {
		t.Fatalf("notif rows setelah rerun = %d, want 1", total)
	}
}
