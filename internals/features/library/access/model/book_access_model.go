// file: internals/features/library/access/model/book_access_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (mapped as string)
========================= */

type AccessStatus string

const (
	AccessStatusActive    AccessStatus = "active"
	AccessStatusExpired   AccessStatus = "expired"
	AccessStatusRevoked   AccessStatus = "revoked"
	AccessStatusSuspended AccessStatus = "suspended"
)

type AccessSource string

const (
	AccessSourcePurchase     AccessSource = "purchase"
	AccessSourceSubscription AccessSource = "subscription"
	AccessSourceAssignment   AccessSource = "assignment"
	AccessSourceAdmin        AccessSource = "admin"
)

// LifetimeSentinel — tanggal jauh di depan sebagai "selamanya".
// Dipakai agar perbandingan expiry tetap seragam (tanpa kolom nullable).
var LifetimeSentinel = time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC)

/* =========================
   BookAccess (grant langsung)
========================= */

// Satu row per pasangan (user, book); lifecycle hanya lewat transisi status,
// row terminal (expired/revoked) dipertahankan untuk audit lalu bisa
// diaktifkan ulang saat grant baru.
type BookAccessModel struct {
	AccessID uuid.UUID `gorm:"type:uuid;primaryKey;column:access_id" json:"access_id"`

	AccessUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_book_access;column:access_user_id" json:"access_user_id"`
	AccessBookID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_book_access;index;column:access_book_id" json:"access_book_id"`

	AccessStartDate time.Time `gorm:"not null;column:access_start_date" json:"access_start_date"`
	AccessEndDate   time.Time `gorm:"not null;column:access_end_date" json:"access_end_date"`

	AccessIsActive bool         `gorm:"not null;default:true;column:access_is_active" json:"access_is_active"`
	AccessStatus   AccessStatus `gorm:"type:varchar(20);not null;default:'active';column:access_status" json:"access_status"`
	AccessSource   AccessSource `gorm:"type:varchar(20);not null;default:'admin';column:access_source" json:"access_source"`

	// Provenance pembuatan bulk (bukan foreign constraint hidup)
	AccessGroupID *uuid.UUID `gorm:"type:uuid;column:access_group_id" json:"access_group_id,omitempty"`
	AccessGradeID *uuid.UUID `gorm:"type:uuid;column:access_grade_id" json:"access_grade_id,omitempty"`

	AccessCreatedAt time.Time `gorm:"autoCreateTime;column:access_created_at" json:"access_created_at"`
	AccessUpdatedAt time.Time `gorm:"autoUpdateTime;column:access_updated_at" json:"access_updated_at"`
}

func (BookAccessModel) TableName() string {
	return "book_accesses"
}

func (a *BookAccessModel) BeforeCreate(tx *gorm.DB) error {
	if a.AccessID == uuid.Nil {
		a.AccessID = uuid.New()
	}
	return nil
}

// EffectivelyActive — flag status DAN window waktu dua-duanya valid.
// Cek tanggal langsung di sini melindungi dari lag sweeper: row ACTIVE
// yang sudah lewat end date tidak pernah dianggap match.
func (a *BookAccessModel) EffectivelyActive(now time.Time) bool {
	return a.AccessIsActive &&
		a.AccessStatus == AccessStatusActive &&
		!now.Before(a.AccessStartDate) &&
		!now.After(a.AccessEndDate)
}
