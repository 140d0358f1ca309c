// file: internals/features/library/access/model/book_assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentTargetType string

const (
	AssignmentTargetSchool  AssignmentTargetType = "school"
	AssignmentTargetGrade   AssignmentTargetType = "grade"
	AssignmentTargetGroup   AssignmentTargetType = "group"
	AssignmentTargetTeacher AssignmentTargetType = "teacher"
	AssignmentTargetStudent AssignmentTargetType = "student"
)

// BookAssignmentModel — grant hierarkis: "buku ini tersedia untuk semua
// yang SAAT INI ada di scope". Keanggotaan dievaluasi dinamis saat resolve,
// tidak dimaterialisasi per user. End date NULL berarti tanpa batas.
type BookAssignmentModel struct {
	AssignmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:assignment_id" json:"assignment_id"`

	AssignmentBookSanityID string `gorm:"type:varchar(100);not null;index;column:assignment_book_sanity_id" json:"assignment_book_sanity_id"`

	AssignmentTargetType AssignmentTargetType `gorm:"type:varchar(20);not null;column:assignment_target_type" json:"assignment_target_type" validate:"required,oneof=school grade group teacher student"`
	AssignmentTargetID   uuid.UUID            `gorm:"type:uuid;not null;column:assignment_target_id" json:"assignment_target_id"`

	AssignmentEndDate  *time.Time `gorm:"column:assignment_end_date" json:"assignment_end_date,omitempty"`
	AssignmentIsActive bool       `gorm:"not null;default:true;column:assignment_is_active" json:"assignment_is_active"`

	AssignmentCreatedAt time.Time      `gorm:"autoCreateTime;column:assignment_created_at" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time      `gorm:"autoUpdateTime;column:assignment_updated_at" json:"assignment_updated_at"`
	AssignmentDeletedAt gorm.DeletedAt `gorm:"column:assignment_deleted_at;index" json:"assignment_deleted_at,omitempty"`
}

func (BookAssignmentModel) TableName() string {
	return "book_assignments"
}

func (a *BookAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if a.AssignmentID == uuid.Nil {
		a.AssignmentID = uuid.New()
	}
	return nil
}

// CurrentlyValid cek flag aktif + window (NULL end = tanpa batas).
func (a *BookAssignmentModel) CurrentlyValid(now time.Time) bool {
	if !a.AssignmentIsActive {
		return false
	}
	if a.AssignmentEndDate != nil && now.After(*a.AssignmentEndDate) {
		return false
	}
	return true
}
