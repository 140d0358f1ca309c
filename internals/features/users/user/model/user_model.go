// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users.
// Soft delete (tombstone) — riwayat pembelian & akses tidak boleh hilang.
type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`

	UserName     string `gorm:"type:varchar(50);not null;column:user_name" json:"user_name" validate:"required,min=3,max=50"`
	UserEmail    string `gorm:"type:varchar(255);uniqueIndex;not null;column:user_email" json:"user_email" validate:"required,email"`
	UserPassword string `gorm:"not null;column:user_password" json:"-" validate:"required,min=8"`

	// Identitas eksternal (session provider) — opsional
	UserExternalID *string `gorm:"type:varchar(255);uniqueIndex;column:user_external_id" json:"user_external_id,omitempty"`

	// Sekolah pemilik (nullable untuk user publik)
	UserSchoolID *uuid.UUID `gorm:"type:uuid;column:user_school_id" json:"user_school_id,omitempty"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
