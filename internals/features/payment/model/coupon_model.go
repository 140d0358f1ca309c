// file: internals/features/payment/model/coupon_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponModel struct {
	CouponID uuid.UUID `gorm:"type:uuid;primaryKey;column:coupon_id" json:"coupon_id"`

	CouponCode    string `gorm:"type:varchar(50);uniqueIndex;not null;column:coupon_code" json:"coupon_code" validate:"required"`
	CouponPercent int    `gorm:"not null;check:coupon_percent >= 0 AND coupon_percent <= 100;column:coupon_percent" json:"coupon_percent" validate:"min=0,max=100"`

	CouponIsActive  bool       `gorm:"not null;default:true;column:coupon_is_active" json:"coupon_is_active"`
	CouponExpiresAt *time.Time `gorm:"column:coupon_expires_at" json:"coupon_expires_at,omitempty"`

	CouponCreatedAt time.Time `gorm:"autoCreateTime;column:coupon_created_at" json:"coupon_created_at"`
}

func (CouponModel) TableName() string {
	return "coupons"
}

func (c *CouponModel) BeforeCreate(tx *gorm.DB) error {
	if c.CouponID == uuid.Nil {
		c.CouponID = uuid.New()
	}
	return nil
}
