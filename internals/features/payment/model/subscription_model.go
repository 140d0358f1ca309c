// file: internals/features/payment/model/subscription_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCanceled  SubscriptionStatus = "canceled"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// SubscriptionModel — langganan per user per buku. LIFETIME memakai sentinel
// end date jauh di depan supaya perbandingan expiry tetap seragam.
type SubscriptionModel struct {
	SubscriptionID uuid.UUID `gorm:"type:uuid;primaryKey;column:subscription_id" json:"subscription_id"`

	SubscriptionUserID uuid.UUID `gorm:"type:uuid;not null;index;column:subscription_user_id" json:"subscription_user_id"`
	SubscriptionBookID uuid.UUID `gorm:"type:uuid;not null;column:subscription_book_id" json:"subscription_book_id"`

	SubscriptionPlan   PlanType           `gorm:"type:varchar(20);not null;column:subscription_plan" json:"subscription_plan"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active';column:subscription_status" json:"subscription_status"`

	SubscriptionStartDate time.Time `gorm:"not null;column:subscription_start_date" json:"subscription_start_date"`
	SubscriptionEndDate   time.Time `gorm:"not null;column:subscription_end_date" json:"subscription_end_date"`

	SubscriptionAutoRenew       bool       `gorm:"not null;default:true;column:subscription_auto_renew" json:"subscription_auto_renew"`
	SubscriptionNextBillingDate *time.Time `gorm:"column:subscription_next_billing_date" json:"subscription_next_billing_date,omitempty"`

	SubscriptionCreatedAt time.Time `gorm:"autoCreateTime;column:subscription_created_at" json:"subscription_created_at"`
	SubscriptionUpdatedAt time.Time `gorm:"autoUpdateTime;column:subscription_updated_at" json:"subscription_updated_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.SubscriptionID == uuid.Nil {
		s.SubscriptionID = uuid.New()
	}
	return nil
}
