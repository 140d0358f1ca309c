// file: internals/features/library/licenses/model/school_book_license_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolBookLicenseModel — pool kursi satu sekolah untuk satu buku.
// Invariant: 0 ≤ used ≤ total. Kolom used adalah nilai turunan: selalu
// di-recount dari row book_accesses di dalam transaksi yang memutasi,
// tidak pernah di-increment/decrement buta.
type SchoolBookLicenseModel struct {
	LicenseID uuid.UUID `gorm:"type:uuid;primaryKey;column:license_id" json:"license_id"`

	LicenseSchoolID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_school_book_license;column:license_school_id" json:"license_school_id"`
	LicenseBookID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_school_book_license;column:license_book_id" json:"license_book_id"`

	LicenseTotal int `gorm:"not null;check:license_total >= 1;column:license_total" json:"license_total" validate:"required,min=1"`
	LicenseUsed  int `gorm:"not null;default:0;column:license_used" json:"license_used"`

	LicenseStartDate time.Time `gorm:"not null;column:license_start_date" json:"license_start_date"`
	LicenseEndDate   time.Time `gorm:"not null;column:license_end_date" json:"license_end_date"`
	LicenseIsActive  bool      `gorm:"not null;default:true;column:license_is_active" json:"license_is_active"`

	LicenseCreatedAt time.Time      `gorm:"autoCreateTime;column:license_created_at" json:"license_created_at"`
	LicenseUpdatedAt time.Time      `gorm:"autoUpdateTime;column:license_updated_at" json:"license_updated_at"`
	LicenseDeletedAt gorm.DeletedAt `gorm:"column:license_deleted_at;index" json:"license_deleted_at,omitempty"`
}

func (SchoolBookLicenseModel) TableName() string {
	return "school_book_licenses"
}

func (l *SchoolBookLicenseModel) BeforeCreate(tx *gorm.DB) error {
	if l.LicenseID == uuid.Nil {
		l.LicenseID = uuid.New()
	}
	return nil
}
