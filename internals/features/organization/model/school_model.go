// file: internals/features/organization/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   School model (tenant)
========================= */

type SchoolModel struct {
	SchoolID uuid.UUID `gorm:"type:uuid;primaryKey;column:school_id" json:"school_id"`

	SchoolName string `gorm:"type:varchar(100);not null;column:school_name" json:"school_name" validate:"required,min=3,max=100"`
	SchoolSlug string `gorm:"type:varchar(100);uniqueIndex;not null;column:school_slug" json:"school_slug"`

	// Seorang coordinator memegang tepat satu sekolah — unique index + cek saat tulis
	SchoolCoordinatorID *uuid.UUID `gorm:"type:uuid;uniqueIndex;column:school_coordinator_id" json:"school_coordinator_id,omitempty"`

	SchoolIsActive bool `gorm:"not null;default:true;column:school_is_active" json:"school_is_active"`

	SchoolCreatedAt time.Time      `gorm:"autoCreateTime;column:school_created_at" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"autoUpdateTime;column:school_updated_at" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string {
	return "schools"
}

func (s *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if s.SchoolID == uuid.Nil {
		s.SchoolID = uuid.New()
	}
	return nil
}
