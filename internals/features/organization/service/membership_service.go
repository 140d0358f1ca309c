// file: internals/features/organization/service/membership_service.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pustakaedu_backend/internals/features/organization/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// AddMember memasukkan user ke group. Idempotent — pasangan (group, user)
// unik, insert kedua jadi no-op.
func AddMember(db *gorm.DB, groupID, userID uuid.UUID) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_member_group_id"}, {Name: "group_member_user_id"}},
		DoNothing: true,
	}).Create(&model.GroupMemberModel{
		GroupMemberGroupID: groupID,
		GroupMemberUserID:  userID,
	}).Error
}

// RemoveMember mengeluarkan user dari group.
func RemoveMember(db *gorm.DB, groupID, userID uuid.UUID) error {
	return db.Where("group_member_group_id = ? AND group_member_user_id = ?", groupID, userID).
		Delete(&model.GroupMemberModel{}).Error
}

// MoveStudent memindahkan siswa antar group dalam satu grade.
// Remove + insert dibungkus SATU transaksi — keluar dari group asal tanpa
// masuk ke group tujuan adalah correctness failure, bukan degraded state.
func MoveStudent(db *gorm.DB, fromGroupID, toGroupID, userID uuid.UUID) error {
	if fromGroupID == toGroupID {
		return fmt.Errorf("%w: group asal dan tujuan sama", errs.ErrValidation)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var from, to model.GroupModel
		if err := tx.Where("group_id = ?", fromGroupID).First(&from).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: group asal tidak ditemukan", errs.ErrNotFound)
			}
			return err
		}
		if err := tx.Where("group_id = ?", toGroupID).First(&to).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: group tujuan tidak ditemukan", errs.ErrNotFound)
			}
			return err
		}
		if from.GroupGradeID != to.GroupGradeID {
			return fmt.Errorf("%w: pindah group hanya dalam satu grade", errs.ErrValidation)
		}

		res := tx.Where("group_member_group_id = ? AND group_member_user_id = ?", fromGroupID, userID).
			Delete(&model.GroupMemberModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: siswa bukan anggota group asal", errs.ErrNotFound)
		}

		return tx.Create(&model.GroupMemberModel{
			GroupMemberGroupID: toGroupID,
			GroupMemberUserID:  userID,
		}).Error
	})
}

// AssignCoordinator menetapkan coordinator sekolah.
// Invariant write-time: satu coordinator memegang tepat satu sekolah —
// unique index di kolom + cek eksplisit untuk pesan Conflict yang jelas.
func AssignCoordinator(db *gorm.DB, schoolID, userID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var other model.SchoolModel
		err := tx.Where("school_coordinator_id = ? AND school_id <> ?", userID, schoolID).
			First(&other).Error
		if err == nil {
			return fmt.Errorf("%w: user sudah jadi coordinator di sekolah %s", errs.ErrConflict, other.SchoolName)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		res := tx.Model(&model.SchoolModel{}).
			Where("school_id = ?", schoolID).
			Update("school_coordinator_id", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: sekolah tidak ditemukan", errs.ErrNotFound)
		}
		return nil
	})
}
