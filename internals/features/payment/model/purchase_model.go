// file: internals/features/payment/model/purchase_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseModel — audit finansial append-only; immutable setelah dibuat.
// Amount adalah nilai final setelah diskon.
type PurchaseModel struct {
	PurchaseID uuid.UUID `gorm:"type:uuid;primaryKey;column:purchase_id" json:"purchase_id"`

	PurchaseUserID        uuid.UUID `gorm:"type:uuid;not null;index;column:purchase_user_id" json:"purchase_user_id"`
	PurchaseBookID        uuid.UUID `gorm:"type:uuid;not null;column:purchase_book_id" json:"purchase_book_id"`
	PurchaseTransactionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:purchase_transaction_id" json:"purchase_transaction_id"`

	PurchaseType   PurchaseType `gorm:"type:varchar(20);not null;column:purchase_type" json:"purchase_type"`
	PurchasePlan   PlanType     `gorm:"type:varchar(20);column:purchase_plan" json:"purchase_plan,omitempty"`
	PurchaseAmount int64        `gorm:"not null;column:purchase_amount" json:"purchase_amount"`

	PurchaseCreatedAt time.Time `gorm:"autoCreateTime;column:purchase_created_at" json:"purchase_created_at"`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}

func (p *PurchaseModel) BeforeCreate(tx *gorm.DB) error {
	if p.PurchaseID == uuid.Nil {
		p.PurchaseID = uuid.New()
	}
	return nil
}
