// file: internals/features/payment/service/subscription_service_test.go
package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accessModel "pustakaedu_backend/internals/features/library/access/model"
	"pustakaedu_backend/internals/features/payment/model"
	"pustakaedu_backend/internals/helpers/errs"
)

func seedSubscription(t *testing.T, db *gorm.DB, userID, bookID uuid.UUID, status model.SubscriptionStatus, end time.Time) *model.SubscriptionModel {
	t.Helper()
	next := end
	sub := &model.SubscriptionModel{
		SubscriptionUserID:          userID,
		SubscriptionBookID:          bookID,
		SubscriptionPlan:            model.PlanMonthly,
		SubscriptionStatus:          status,
		SubscriptionStartDate:       end.AddDate(0, -1, 0),
		SubscriptionEndDate:         end,
		SubscriptionAutoRenew:       status == model.SubscriptionActive,
		SubscriptionNextBillingDate: &next,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	return sub
}

// Cancel mematikan auto-renew tapi akses periode berjalan tetap hidup.
func TestCancelSubscriptionKeepsCurrentAccess(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	user := seedUser(t, db)
	book := seedBook(t, db, "book-cancel")
	sub := seedSubscription(t, db, user.UserID, book.BookID, model.SubscriptionActive, now.AddDate(0, 1, 0))

	access := accessModel.BookAccessModel{
		AccessUserID:    user.UserID,
		AccessBookID:    book.BookID,
		AccessStartDate: now.AddDate(0, -1, 0),
		AccessEndDate:   now.AddDate(0, 1, 0),
		AccessIsActive:  true,
		AccessStatus:    accessModel.AccessStatusActive,
		AccessSource:    accessModel.AccessSourceSubscription,
	}
	if err := db.Create(&access).Error; err != nil {
		t.Fatalf("seed access: %v", err)
	}

	if err := CancelSubscription(db, user.UserID, sub.SubscriptionID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var saved model.SubscriptionModel
	if err := db.Where("subscription_id = ?", sub.SubscriptionID).First(&saved).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.SubscriptionStatus != model.SubscriptionCanceled || saved.SubscriptionAutoRenew {
		t.Fatalf("sub = %+v, want canceled tanpa auto-renew", saved)
	}
	if saved.SubscriptionNextBillingDate != nil {
		t.Fatal("next billing harus dikosongkan")
	}

	var savedAccess accessModel.BookAccessModel
	if err := db.Where("access_id = ?", access.AccessID).First(&savedAccess).Error; err != nil {
		t.Fatalf("reload access: %v", err)
	}
	if savedAccess.AccessStatus != accessModel.AccessStatusActive {
		t.Fatalf("akses periode berjalan ikut dicabut: %+v", savedAccess)
	}

	// Cancel kedua = no-op
	if err := CancelSubscription(db, user.UserID, sub.SubscriptionID); err != nil {
		t.Fatalf("cancel kedua harus no-op: %v", err)
	}
}

func TestCancelSubscriptionWrongUser(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	owner := seedUser(t, db)
	other := seedUser(t, db)
	book := seedBook(t, db, "book-owner")
	sub := seedSubscription(t, db, owner.UserID, book.BookID, model.SubscriptionActive, now.AddDate(0, 1, 0))

	err := CancelSubscription(db, other.UserID, sub.SubscriptionID)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound (bukan milik user)", err)
	}
}

func TestSweepLapsedSubscriptions(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	user := seedUser(t, db)
	b1 := seedBook(t, db, "book-lapse-1")
	b2 := seedBook(t, db, "book-lapse-2")

	lapsed := seedSubscription(t, db, user.UserID, b1.BookID, model.SubscriptionActive, now.AddDate(0, 0, -1))
	current := seedSubscription(t, db, user.UserID, b2.BookID, model.SubscriptionActive, now.AddDate(0, 1, 0))

	n, err := SweepLapsedSubscriptions(db, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("swept = %d, want 1", n)
	}

	var saved model.SubscriptionModel
	db.Where("subscription_id = ?", lapsed.SubscriptionID).First(&saved)
	if saved.SubscriptionStatus != model.SubscriptionExpired {
		t.Fatalf("lapsed = %s, want expired", saved.SubscriptionStatus)
	}
	var kept model.SubscriptionModel
	db.Where("subscription_id = ?", current.SubscriptionID).First(&kept)
	if kept.SubscriptionStatus != model.SubscriptionActive {
		t.Fatalf("current ikut tersapu: %s", kept.SubscriptionStatus)
	}
}
