// file: internals/features/payment/service/reconcile_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accessModel "pustakaedu_backend/internals/features/library/access/model"
	accessService "pustakaedu_backend/internals/features/library/access/service"
	bookService "pustakaedu_backend/internals/features/library/books/service"
	notifService "pustakaedu_backend/internals/features/notifications/service"
	"pustakaedu_backend/internals/features/payment/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// PaymentNotification — payload webhook Midtrans yang dipakai reconciliation.
// Verifikasi signature diasumsikan sudah lolos sebelum sampai ke sini.
type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// HandlePaymentNotification menerjemahkan event pembayaran eksternal menjadi
// state entitlement internal, exactly once (idempotent pada order id).
// Error diproses = webhook TIDAK di-ack, biar Midtrans retry — menelan error
// di sini sama dengan menolak akses customer yang sudah bayar.
func HandlePaymentNotification(ctx context.Context, db *gorm.DB, catalog bookService.CatalogClient, notif PaymentNotification) error {
	if notif.OrderID == "" || notif.TransactionStatus == "" {
		log.Println("[ERROR] Payload webhook tidak lengkap:", notif)
		return errs.ErrValidation
	}

	log.Printf("📄 Order ID: %s | status: %s | fraud: %s", notif.OrderID, notif.TransactionStatus, notif.FraudStatus)

	switch notif.TransactionStatus {
	case "capture", "settlement":
		if notif.FraudStatus == "challenge" || notif.FraudStatus == "deny" {
			log.Printf("[WARNING] Order %s ditahan fraud check (%s), tidak diproses", notif.OrderID, notif.FraudStatus)
			return nil
		}
		return handlePaymentCompleted(ctx, db, catalog, notif.OrderID)
	case "deny", "cancel", "expire", "failure":
		return handlePaymentFailed(db, notif.OrderID)
	default:
		// pending dsb. — belum ada yang perlu direconcile
		log.Println("[INFO] Status tidak diproses:", notif.TransactionStatus)
		return nil
	}
}

func handlePaymentCompleted(ctx context.Context, db *gorm.DB, catalog bookService.CatalogClient, orderID string) error {
	var trx model.TransactionModel
	if err := db.Where("transaction_order_id = ?", orderID).First(&trx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transaksi %s tidak ditemukan", errs.ErrNotFound, orderID)
		}
		return err
	}

	// Idempotent: webhook yang sama terkirim dua kali → satu COMPLETED, satu grant
	if trx.TransactionStatus == model.TransactionCompleted {
		log.Printf("[INFO] Order %s sudah completed, webhook duplikat diabaikan", orderID)
		return nil
	}

	// Proyeksi buku boleh belum ada — sync on demand, jangan gagalkan flow
	book, err := bookService.EnsureBook(ctx, db, catalog, trx.TransactionBookSanityID)
	if err != nil {
		return err
	}

	now := time.Now()
	start, end, err := GrantWindow(trx.TransactionPurchaseType, trx.TransactionPlan, now)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Re-check di dalam transaksi — dua webhook paralel cuma satu yang menang
		var current model.TransactionModel
		if err := tx.Where("transaction_order_id = ?", orderID).First(&current).Error; err != nil {
			return err
		}
		if current.TransactionStatus == model.TransactionCompleted {
			return nil
		}

		source := accessModel.AccessSourcePurchase
		if current.TransactionPurchaseType == model.PurchaseSubscription {
			source = accessModel.AccessSourceSubscription
		}

		if err := accessService.GrantForPurchase(tx, current.TransactionUserID, book.BookID, start, end, source); err != nil {
			return err
		}

		if err := tx.Create(&model.PurchaseModel{
			PurchaseUserID:        current.TransactionUserID,
			PurchaseBookID:        book.BookID,
			PurchaseTransactionID: current.TransactionID,
			PurchaseType:          current.TransactionPurchaseType,
			PurchasePlan:          current.TransactionPlan,
			PurchaseAmount:        current.TransactionGrossAmount,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.TransactionModel{}).
			Where("transaction_id = ?", current.TransactionID).
			Updates(map[string]interface{}{
				"transaction_status":  model.TransactionCompleted,
				"transaction_paid_at": now,
			}).Error; err != nil {
			return err
		}

		// Plan berulang → buat/perpanjang langganan
		if current.TransactionPurchaseType == model.PurchaseSubscription && current.TransactionPlan != model.PlanLifetime {
			if err := upsertSubscription(tx, &current, book.BookID, start, end); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Notifikasi fire-and-forget — gagal kirim tidak me-rollback grant
	notifService.Enqueue(db, trx.TransactionUserID, notifService.TypePurchaseCompleted, map[string]interface{}{
		"order_id":       orderID,
		"book_sanity_id": trx.TransactionBookSanityID,
		"amount":         trx.TransactionGrossAmount,
	})
	return nil
}

// handlePaymentFailed menandai transaksi PENDING jadi FAILED.
// Tidak pernah menyentuh akses yang sudah pernah di-grant (charge ulang yang
// gagal setelah sukses sebelumnya = no-op pada entitlement).
func handlePaymentFailed(db *gorm.DB, orderID string) error {
	var trx model.TransactionModel
	if err := db.Where("transaction_order_id = ?", orderID).First(&trx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transaksi %s tidak ditemukan", errs.ErrNotFound, orderID)
		}
		return err
	}

	if trx.TransactionStatus != model.TransactionPending {
		log.Printf("[INFO] Order %s berstatus %s, event gagal diabaikan", orderID, trx.TransactionStatus)
		return nil
	}

	if err := db.Model(&model.TransactionModel{}).
		Where("transaction_id = ? AND transaction_status = ?", trx.TransactionID, model.TransactionPending).
		Update("transaction_status", model.TransactionFailed).Error; err != nil {
		return err
	}

	notifService.Enqueue(db, trx.TransactionUserID, notifService.TypePaymentFailed, map[string]interface{}{
		"order_id": orderID,
	})
	return nil
}

func upsertSubscription(tx *gorm.DB, trx *model.TransactionModel, bookID uuid.UUID, start, end time.Time) error {
	nextBilling := end

	var sub model.SubscriptionModel
	err := tx.Where("subscription_user_id = ? AND subscription_book_id = ?", trx.TransactionUserID, bookID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.SubscriptionModel{
			SubscriptionUserID:          trx.TransactionUserID,
			SubscriptionBookID:          bookID,
			SubscriptionPlan:            trx.TransactionPlan,
			SubscriptionStatus:          model.SubscriptionActive,
			SubscriptionStartDate:       start,
			SubscriptionEndDate:         end,
			SubscriptionAutoRenew:       true,
			SubscriptionNextBillingDate: &nextBilling,
		}).Error
	}
	if err != nil {
		return err
	}

	// Perpanjangan: window digeser maju, status kembali aktif
	return tx.Model(&model.SubscriptionModel{}).
		Where("subscription_id = ?", sub.SubscriptionID).
		Updates(map[string]interface{}{
			"subscription_plan":              trx.TransactionPlan,
			"subscription_status":            model.SubscriptionActive,
			"subscription_end_date":          end,
			"subscription_next_billing_date": nextBilling,
		}).Error
}
