// file: internals/features/payment/service/reconcile_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	accessModel "pustakaedu_backend/internals/features/library/access/model"
	bookModel "pustakaedu_backend/internals/features/library/books/model"
	bookService "pustakaedu_backend/internals/features/library/books/service"
	notifModel "pustakaedu_backend/internals/features/notifications/model"
	orgModel "pustakaedu_backend/internals/features/organization/model"
	"pustakaedu_backend/internals/features/payment/model"
	userModel "pustakaedu_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.UserRoleModel{},
		&orgModel.GroupModel{},
		&orgModel.GroupMemberModel{},
		&bookModel.BookModel{},
		&accessModel.BookAccessModel{},
		&model.TransactionModel{},
		&model.PurchaseModel{},
		&model.SubscriptionModel{},
		&model.CouponModel{},
		&notifModel.NotificationModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeCatalog — katalog deterministik untuk test, tanpa HTTP.
type fakeCatalog struct {
	books map[string]*bookService.CatalogBook
}

func (f *fakeCatalog) FetchBook(ctx context.Context, sanityID string) (*bookService.CatalogBook, error) {
	if b, ok := f.books[sanityID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func seedUser(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName:     "Pembeli Uji",
		UserEmail:    uuid.NewString() + "@test.local",
		UserPassword: "rahasia-sekali",
		UserIsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBook(t *testing.T, db *gorm.DB, sanityID string) *bookModel.BookModel {
	t.Helper()
	b := &bookModel.BookModel{
		BookSanityID: sanityID,
		BookTitle:    "IPA Kelas 6",
		BookIsActive: true,
		BookPrice:    90000,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedPendingTransaction(t *testing.T, db *gorm.DB, userID uuid.UUID, sanityID string, pt model.PurchaseType, plan model.PlanType) *model.TransactionModel {
	t.Helper()
	trx := &model.TransactionModel{
		TransactionOrderID:      "PUSTAKA-TEST-" + uuid.NewString()[:8],
		TransactionUserID:       userID,
		TransactionBookSanityID: sanityID,
		TransactionPurchaseType: pt,
		TransactionPlan:         plan,
		TransactionGrossAmount:  90000,
		TransactionStatus:       model.TransactionPending,
	}
	if err := db.Create(trx).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return trx
}

func TestSettlementGrantsAccess(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	book := seedBook(t, db, "book-pay")
	trx := seedPendingTransaction(t, db, user.UserID, "book-pay", model.PurchaseSingleBook, "")

	err := HandlePaymentNotification(ctx, db, nil, PaymentNotification{
		OrderID:           trx.TransactionOrderID,
		TransactionStatus: "settlement",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	var saved model.TransactionModel
	if err := db.Where("transaction_id = ?", trx.TransactionID).First(&saved).Error; err != nil {
		t.Fatalf("reload trx: %v", err)
	}
	if saved.TransactionStatus != model.TransactionCompleted {
		t.Fatalf("status = %s, want completed", saved.TransactionStatus)
	}
	if saved.TransactionPaidAt == nil {
		t.Fatal("paid_at harus terisi")
	}

	var access accessModel.BookAccessModel
	if err := db.Where("access_user_id = ? AND access_book_id = ?", user.UserID, book.BookID).First(&access).Error; err != nil {
		t.Fatalf("akses tidak ter-grant: %v", err)
	}
	if access.AccessStatus != accessModel.AccessStatusActive {
		t.Fatalf("access status = %s, want active", access.AccessStatus)
	}
	// Pembelian satu buku = permanen (sentinel)
	if !access.AccessEndDate.Equal(accessModel.LifetimeSentinel) {
		t.Fatalf("end = %v, want sentinel %v", access.AccessEndDate, accessModel.LifetimeSentinel)
	}
	if access.AccessSource != accessModel.AccessSourcePurchase {
		t.Fatalf("source = %s, want purchase", access.AccessSource)
	}

	var purchaseCount int64
	db.Model(&model.PurchaseModel{}).Where("purchase_transaction_id = ?", trx.TransactionID).Count(&purchaseCount)
	if purchaseCount != 1 {
		t.Fatalf("purchase count = %d, want 1", purchaseCount)
	}
}

// Webhook yang sama terkirim dua kali → tetap satu grant, satu purchase.
func TestDuplicateSettlementIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	book := seedBook(t, db, "book-dup")
	trx := seedPendingTransaction(t, db, user.UserID, "book-dup", model.PurchaseSingleBook, "")

	notif := PaymentNotification{
		OrderID:           trx.TransactionOrderID,
		TransactionStatus: "settlement",
	}
	if err := HandlePaymentNotification(ctx, db, nil, notif); err != nil {
		t.Fatalf("notify pertama: %v", err)
	}
	if err := HandlePaymentNotification(ctx, db, nil, notif); err != nil {
		t.Fatalf("notify duplikat harus no-op, got: %v", err)
	}

	var purchaseCount, accessCount int64
	db.Model(&model.PurchaseModel{}).Where("purchase_transaction_id = ?", trx.TransactionID).Count(&purchaseCount)
	db.Model(&accessModel.BookAccessModel{}).Where("access_user_id = ? AND access_book_id = ?", user.UserID, book.BookID).Count(&accessCount)
	if purchaseCount != 1 {
		t.Fatalf("purchase count = %d, want 1", purchaseCount)
	}
	if accessCount != 1 {
		t.Fatalf("access count = %d, want 1", accessCount)
	}
}

func TestSubscriptionSettlementCreatesSubscription(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	book := seedBook(t, db, "book-sub")
	trx := seedPendingTransaction(t, db, user.UserID, "book-sub", model.PurchaseSubscription, model.PlanMonthly)

	before := time.Now()
	if err := HandlePaymentNotification(ctx, db, nil, PaymentNotification{
		OrderID:           trx.TransactionOrderID,
		TransactionStatus: "capture",
		FraudStatus:       "accept",
	}); err != nil {
		t.Fatalf("notify: %v", err)
	}

	var sub model.SubscriptionModel
	if err := db.Where("subscription_user_id = ? AND subscription_book_id = ?", user.UserID, book.BookID).First(&sub).Error; err != nil {
		t.Fatalf("subscription tidak dibuat: %v", err)
	}
	if sub.SubscriptionStatus != model.SubscriptionActive || !sub.SubscriptionAutoRenew {
		t.Fatalf("sub = %+v, want active auto-renew", sub)
	}
	// Monthly ≈ +1 bulan dari saat settle
	wantMin := before.AddDate(0, 1, 0).Add(-time.Minute)
	if sub.SubscriptionEndDate.Before(wantMin) {
		t.Fatalf("end = %v, want ±1 bulan dari %v", sub.SubscriptionEndDate, before)
	}

	var access accessModel.BookAccessModel
	if err := db.Where("access_user_id = ? AND access_book_id = ?", user.UserID, book.BookID).First(&access).Error; err != nil {
		t.Fatalf("akses tidak ter-grant: %v", err)
	}
	if access.AccessSource != accessModel.AccessSourceSubscription {
		t.Fatalf("source = %s, want subscription", access.AccessSource)
	}
}

func TestFailureEventNeverTouchesGrants(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	book := seedBook(t, db, "book-fail")

	// 1) Pembelian sukses dulu
	trx1 := seedPendingTransaction(t, db, user.UserID, "book-fail", model.PurchaseSingleBook, "")
	if err := HandlePaymentNotification(ctx, db, nil, PaymentNotification{
		OrderID:           trx1.TransactionOrderID,
		TransactionStatus: "settlement",
	}); err != nil {
		t.Fatalf("settlement: %v", err)
	}

	// 2) Transaksi lain gagal — grant lama harus utuh
	trx2 := seedPendingTransaction(t, db, user.UserID, "book-fail", model.PurchaseSingleBook, "")
	if err := HandlePaymentNotification(ctx, db, nil, PaymentNotification{
		OrderID:           trx2.TransactionOrderID,
		TransactionStatus: "expire",
	}); err != nil {
		t.Fatalf("expire: %v", err)
	}

	var saved model.TransactionModel
	if err := db.Where("transaction_id = ?", trx2.TransactionID).First(&saved).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.TransactionStatus != model.TransactionFailed {
		t.Fatalf("status = %s, want failed", saved.TransactionStatus)
	}

	var access accessModel.BookAccessModel
	if err := db.Where("access_user_id = ? AND access_book_id = ?", user.UserID, book.BookID).First(&access).Error; err != nil {
		t.Fatalf("reload access: %v", err)
	}
	if access.AccessStatus != accessModel.AccessStatusActive {
		t.Fatalf("grant lama tersentuh event gagal: %+v", access)
	}
}

func TestFraudChallengeIsSkipped(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	seedBook(t, db, "book-fraud")
	trx := seedPendingTransaction(t, db, user.UserID, "book-fraud", model.PurchaseSingleBook, "")

	if err := HandlePaymentNotification(ctx, db, nil, PaymentNotification{
		OrderID:           trx.TransactionOrderID,
		TransactionStatus: "capture",
		FraudStatus:       "challenge",
	}); err != nil {
		t.Fatalf("challenge harus di-skip tanpa error: %v", err)
	}

	var saved model.TransactionModel
	if err := db.Where("transaction_id = ?", trx.TransactionID).First(&saved).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.TransactionStatus != model.TransactionPending {
		t.Fatalf("status = %s, want tetap pending", saved.TransactionStatus)
	}
}

func TestUnknownOrderIsNotAcked(t *testing.T) {
	db := openTestDB(t)
	err := HandlePaymentNotification(context.Background(), db, nil, PaymentNotification{
		OrderID:           "PUSTAKA-TIDAK-ADA",
		TransactionStatus: "settlement",
	})
	if err == nil {
		t.Fatal("order tak dikenal harus error supaya webhook di-retry")
	}
}

func TestSettlementSyncsBookFromCatalog(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	// Tidak ada proyeksi lokal — harus di-sync dari katalog saat reconcile
	catalog := &fakeCatalog{books: map[string]*bookService.CatalogBook{
		"book-lazy": {ID: "book-lazy", Name: "Bahasa Indonesia", Price: 80000},
	}}
	trx := seedPendingTransaction(t, db, user.UserID, "book-lazy", model.PurchaseSingleBook, "")

	if err := HandlePaymentNotification(ctx, db, catalog, PaymentNotification{
		OrderID:           trx.TransactionOrderID,
		TransactionStatus: "settlement",
	}); err != nil {
		t.Fatalf("notify: %v", err)
	}

	var book bookModel.BookModel
	if err := db.Where("book_sanity_id = ?", "book-lazy").First(&book).Error; err != nil {
		t.Fatalf("proyeksi buku tidak dibuat: %v", err)
	}
	var accessCount int64
	db.Model(&accessModel.BookAccessModel{}).Where("access_user_id = ? AND access_book_id = ?", user.UserID, book.BookID).Count(&accessCount)
	if accessCount != 1 {
		t.Fatalf("access count = %d, want 1", accessCount)
	}
}
