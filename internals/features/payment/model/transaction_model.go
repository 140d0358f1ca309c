// file: internals/features/payment/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (mapped as string)
========================= */

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

type PurchaseType string

const (
	PurchaseSingleBook   PurchaseType = "single_book"
	PurchaseSubscription PurchaseType = "subscription"
)

type PlanType string

const (
	PlanMonthly   PlanType = "monthly"
	PlanQuarterly PlanType = "quarterly"
	PlanAnnual    PlanType = "annual"
	PlanLifetime  PlanType = "lifetime"
)

/* =========================
   Transaction (append-only)
========================= */

// Order ID Midtrans adalah idempotency key reconciliation: maksimal satu
// transaksi COMPLETED per event pembayaran sukses — webhook yang terkirim
// dobel tidak boleh double-grant.
type TransactionModel struct {
	TransactionID uuid.UUID `gorm:"type:uuid;primaryKey;column:transaction_id" json:"transaction_id"`

	TransactionOrderID string    `gorm:"type:varchar(100);uniqueIndex;not null;column:transaction_order_id" json:"transaction_order_id"`
	TransactionUserID  uuid.UUID `gorm:"type:uuid;not null;index;column:transaction_user_id" json:"transaction_user_id"`

	TransactionBookSanityID string `gorm:"type:varchar(100);not null;column:transaction_book_sanity_id" json:"transaction_book_sanity_id"`

	TransactionPurchaseType PurchaseType `gorm:"type:varchar(20);not null;column:transaction_purchase_type" json:"transaction_purchase_type"`
	TransactionPlan         PlanType     `gorm:"type:varchar(20);column:transaction_plan" json:"transaction_plan,omitempty"`

	TransactionGrossAmount int64   `gorm:"not null;check:transaction_gross_amount >= 0;column:transaction_gross_amount" json:"transaction_gross_amount"`
	TransactionDiscount    int64   `gorm:"not null;default:0;column:transaction_discount" json:"transaction_discount"`
	TransactionCouponCode  *string `gorm:"type:varchar(50);column:transaction_coupon_code" json:"transaction_coupon_code,omitempty"`

	TransactionStatus TransactionStatus `gorm:"type:varchar(20);not null;default:'pending';column:transaction_status" json:"transaction_status"`

	TransactionSnapToken string     `gorm:"type:text;column:transaction_snap_token" json:"transaction_snap_token,omitempty"`
	TransactionPaidAt    *time.Time `gorm:"column:transaction_paid_at" json:"transaction_paid_at,omitempty"`

	TransactionCreatedAt time.Time `gorm:"autoCreateTime;column:transaction_created_at" json:"transaction_created_at"`
	TransactionUpdatedAt time.Time `gorm:"autoUpdateTime;column:transaction_updated_at" json:"transaction_updated_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == uuid.Nil {
		t.TransactionID = uuid.New()
	}
	return nil
}
