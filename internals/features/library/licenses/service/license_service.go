// file: internals/features/library/licenses/service/license_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accessModel "pustakaedu_backend/internals/features/library/access/model"
	"pustakaedu_backend/internals/features/library/licenses/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// FindActiveLicense mencari pool lisensi aktif (school, book). Nil bila tidak ada
// pool — artinya grant tidak dibatasi kursi.
// Row di-lock FOR UPDATE: cek kapasitas + insert dari dua transaksi bersamaan
// jadi serial di row lisensi, dua-duanya tidak bisa lolos dengan kursi terakhir
// yang sama. (Driver sqlite mengabaikan klausa lock — DB-nya single writer.)
func FindActiveLicense(tx *gorm.DB, schoolID, bookID uuid.UUID, now time.Time) (*model.SchoolBookLicenseModel, error) {
	var lic model.SchoolBookLicenseModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("license_school_id = ? AND license_book_id = ? AND license_is_active = ?", schoolID, bookID, true).
		Where("license_start_date <= ? AND license_end_date >= ?", now, now).
		First(&lic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lic, nil
}

// CountUsedSeats menghitung ulang pemakaian kursi dari row book_accesses:
// distinct user aktif milik sekolah yang statusnya masih active untuk buku ini.
// Recount (bukan decrement) supaya drift lama ikut terkoreksi.
func CountUsedSeats(tx *gorm.DB, schoolID, bookID uuid.UUID) (int64, error) {
	var used int64
	err := tx.Model(&accessModel.BookAccessModel{}).
		Joins("JOIN users ON users.user_id = book_accesses.access_user_id").
		Where("book_accesses.access_book_id = ?", bookID).
		Where("book_accesses.access_status = ?", accessModel.AccessStatusActive).
		Where("users.user_school_id = ?", schoolID).
		Where("users.user_deleted_at IS NULL").
		Distinct("book_accesses.access_user_id").
		Count(&used).Error
	return used, err
}

// RecountUsed menulis ulang kolom license_used di dalam transaksi yang sama
// dengan mutasi grant/revoke-nya. Kolom selalu ditulis jujur; kalau hasil
// recount melebihi total, ErrCapacityExceeded dikembalikan supaya transaksi
// grant yang meloloskan kelebihan itu rollback alih-alih merekamnya diam-diam.
func RecountUsed(tx *gorm.DB, lic *model.SchoolBookLicenseModel) error {
	used, err := CountUsedSeats(tx, lic.LicenseSchoolID, lic.LicenseBookID)
	if err != nil {
		return err
	}
	lic.LicenseUsed = int(used)
	if err := tx.Model(&model.SchoolBookLicenseModel{}).
		Where("license_id = ?", lic.LicenseID).
		Update("license_used", lic.LicenseUsed).Error; err != nil {
		return err
	}
	if lic.LicenseUsed > lic.LicenseTotal {
		return fmt.Errorf("%w: pool terisi %d dari total %d", errs.ErrCapacityExceeded, lic.LicenseUsed, lic.LicenseTotal)
	}
	return nil
}
