// file: internals/features/users/user/model/user_role_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoleModel — user bisa memegang banyak role sekaligus ("has role", bukan "is role").
type UserRoleModel struct {
	UserRoleID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_role_id" json:"user_role_id"`

	UserRoleUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_role;column:user_role_user_id" json:"user_role_user_id"`
	UserRoleRole   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_user_role;column:user_role_role" json:"user_role_role" validate:"required,oneof=admin coordinator teacher student public"`

	UserRoleCreatedAt time.Time `gorm:"autoCreateTime;column:user_role_created_at" json:"user_role_created_at"`
}

func (UserRoleModel) TableName() string {
	return "user_roles"
}

func (r *UserRoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.UserRoleID == uuid.Nil {
		r.UserRoleID = uuid.New()
	}
	return nil
}
