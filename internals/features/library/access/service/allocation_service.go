// file: internals/features/library/access/service/allocation_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pustakaedu_backend/internals/features/library/access/model"
	licenseService "pustakaedu_backend/internals/features/library/licenses/service"
	orgModel "pustakaedu_backend/internals/features/organization/model"
	userModel "pustakaedu_backend/internals/features/users/user/model"
	"pustakaedu_backend/internals/helpers/errs"
)

type ScopeType string

const (
	ScopeIndividual ScopeType = "individual"
	ScopeSchool     ScopeType = "school"
	ScopeGrade      ScopeType = "grade"
	ScopeGroup      ScopeType = "group"
)

// GrantScope — target organisasi dari bulk grant.
type GrantScope struct {
	Type     ScopeType   `json:"type" validate:"required,oneof=individual school grade group"`
	TargetID uuid.UUID   `json:"target_id"`
	UserIDs  []uuid.UUID `json:"user_ids,omitempty"` // hanya untuk scope individual
}

type GrantBulkInput struct {
	BookID    uuid.UUID
	SchoolID  uuid.UUID
	Scope     GrantScope
	StartDate time.Time
	EndDate   time.Time
	Source    model.AccessSource
}

type GrantBulkResult struct {
	AssignedCount         int `json:"assigned_count"`
	AlreadyHadAccessCount int `json:"already_had_access_count"`
}

type RevokeBulkResult struct {
	RevokedCount int `json:"revoked_count"`
}

// resolveScopeUsers menerjemahkan scope ke daftar user id aktif (distinct).
// Soft-deleted user otomatis terfilter oleh gorm.DeletedAt.
func resolveScopeUsers(tx *gorm.DB, scope GrantScope) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	switch scope.Type {
	case ScopeIndividual:
		if len(scope.UserIDs) == 0 {
			return nil, errs.NewEmptyScope(string(ScopeIndividual))
		}
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_id IN ? AND user_is_active = ?", scope.UserIDs, true).
			Pluck("user_id", &ids).Error; err != nil {
			return nil, err
		}
	case ScopeSchool:
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_school_id = ? AND user_is_active = ?", scope.TargetID, true).
			Pluck("user_id", &ids).Error; err != nil {
			return nil, err
		}
	case ScopeGrade:
		if err := tx.Model(&orgModel.GroupMemberModel{}).
			Distinct("group_member_user_id").
			Joins("JOIN groups ON groups.group_id = group_members.group_member_group_id").
			Where("groups.group_grade_id = ?", scope.TargetID).
			Where("groups.group_deleted_at IS NULL").
			Pluck("group_member_user_id", &ids).Error; err != nil {
			return nil, err
		}
	case ScopeGroup:
		if err := tx.Model(&orgModel.GroupMemberModel{}).
			Where("group_member_group_id = ?", scope.TargetID).
			Pluck("group_member_user_id", &ids).Error; err != nil {
			return nil, err
		}
	default:
		return nil, errs.ErrValidation
	}

	if len(ids) == 0 {
		return nil, errs.NewEmptyScope(string(scope.Type))
	}
	return ids, nil
}

// GrantBulk membuat/mengaktifkan ulang BookAccess untuk semua user di scope.
// Idempotent per (user, book): user yang sudah pegang grant efektif dilewati,
// tidak ada row ganda dan tidak double-count ke pool lisensi.
// Cek kapasitas + insert berjalan dalam SATU transaksi; kursi di-recount dari
// row book_accesses, bukan dari counter yang dipercaya buta. Kebijakan
// overflow: tolak seluruh batch (ErrCapacityExceeded), bukan grant sebagian.
func GrantBulk(db *gorm.DB, in GrantBulkInput) (*GrantBulkResult, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, errs.ErrValidation
	}
	result := &GrantBulkResult{}
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		candidates, err := resolveScopeUsers(tx, in.Scope)
		if err != nil {
			return err
		}

		// Row existing untuk pasangan (candidate, book) — status apa pun
		var existing []model.BookAccessModel
		if err := tx.Where("access_book_id = ? AND access_user_id IN ?", in.BookID, candidates).
			Find(&existing).Error; err != nil {
			return err
		}
		existingByUser := make(map[uuid.UUID]*model.BookAccessModel, len(existing))
		for i := range existing {
			existingByUser[existing[i].AccessUserID] = &existing[i]
		}

		var freshUsers []uuid.UUID
		var reactivate []uuid.UUID
		for _, uid := range candidates {
			row, ok := existingByUser[uid]
			switch {
			case !ok:
				freshUsers = append(freshUsers, uid)
			case row.EffectivelyActive(now):
				result.AlreadyHadAccessCount++
			default:
				// terminal/suspended → diaktifkan ulang dengan window baru
				reactivate = append(reactivate, uid)
			}
		}

		needed := len(freshUsers) + len(reactivate)
		if needed == 0 {
			return nil
		}

		// Kapasitas pool (kalau sekolah punya lisensi untuk buku ini)
		lic, err := licenseService.FindActiveLicense(tx, in.SchoolID, in.BookID, now)
		if err != nil {
			return err
		}
		if lic != nil {
			used, err := licenseService.CountUsedSeats(tx, in.SchoolID, in.BookID)
			if err != nil {
				return err
			}
			if int(used)+needed > lic.LicenseTotal {
				return errs.NewCapacity(needed, lic.LicenseTotal-int(used))
			}
		}

		// Provenance group/grade untuk row hasil bulk
		var groupID, gradeID *uuid.UUID
		switch in.Scope.Type {
		case ScopeGroup:
			target := in.Scope.TargetID
			groupID = &target
		case ScopeGrade:
			target := in.Scope.TargetID
			gradeID = &target
		}

		if len(freshUsers) > 0 {
			rows := make([]model.BookAccessModel, 0, len(freshUsers))
			for _, uid := range freshUsers {
				rows = append(rows, model.BookAccessModel{
					AccessUserID:    uid,
					AccessBookID:    in.BookID,
					AccessStartDate: in.StartDate,
					AccessEndDate:   in.EndDate,
					AccessIsActive:  true,
					AccessStatus:    model.AccessStatusActive,
					AccessSource:    in.Source,
					AccessGroupID:   groupID,
					AccessGradeID:   gradeID,
				})
			}
			// OnConflict DoNothing: pengaman race dua grant bersamaan.
			// Count dari RowsAffected — row yang dimenangkan grant lain tidak
			// ikut dilaporkan sebagai assigned.
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "access_user_id"}, {Name: "access_book_id"}},
				DoNothing: true,
			}).Create(&rows)
			if res.Error != nil {
				return res.Error
			}
			result.AssignedCount += int(res.RowsAffected)
		}

		if len(reactivate) > 0 {
			res := tx.Model(&model.BookAccessModel{}).
				Where("access_book_id = ? AND access_user_id IN ?", in.BookID, reactivate).
				Updates(map[string]interface{}{
					"access_status":     model.AccessStatusActive,
					"access_is_active":  true,
					"access_start_date": in.StartDate,
					"access_end_date":   in.EndDate,
					"access_source":     in.Source,
				})
			if res.Error != nil {
				return res.Error
			}
			result.AssignedCount += int(res.RowsAffected)
		}

		if lic != nil {
			return licenseService.RecountUsed(tx, lic)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RevokeBulk mencabut grant langsung untuk daftar user, lalu recount pool.
// Revoke adalah transisi status, bukan delete — row dipertahankan untuk audit.
func RevokeBulk(db *gorm.DB, bookID uuid.UUID, userIDs []uuid.UUID, schoolID uuid.UUID) (*RevokeBulkResult, error) {
	if len(userIDs) == 0 {
		return nil, errs.NewEmptyScope(string(ScopeIndividual))
	}
	result := &RevokeBulkResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.BookAccessModel{}).
			Where("access_book_id = ? AND access_user_id IN ?", bookID, userIDs).
			Where("access_status IN ?", []model.AccessStatus{model.AccessStatusActive, model.AccessStatusSuspended}).
			Updates(map[string]interface{}{
				"access_status":    model.AccessStatusRevoked,
				"access_is_active": false,
			})
		if res.Error != nil {
			return res.Error
		}
		result.RevokedCount = int(res.RowsAffected)

		lic, err := licenseService.FindActiveLicense(tx, schoolID, bookID, time.Now())
		if err != nil {
			return err
		}
		if lic != nil {
			// Revoke menurunkan pemakaian; drift berlebih yang masih tersisa
			// tidak boleh memblokir pencabutan — recount-nya sudah tertulis.
			if err := licenseService.RecountUsed(tx, lic); err != nil && !errors.Is(err, errs.ErrCapacityExceeded) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GrantForPurchase — grant satu user hasil reconciliation pembayaran.
// Dipakai payment engine; idempotent seperti GrantBulk tapi tanpa pool
// (pembelian pribadi tidak memakan kursi sekolah) dan window-nya hanya
// diperluas, tidak pernah dipersempit (grant paling longgar menang).
func GrantForPurchase(tx *gorm.DB, userID, bookID uuid.UUID, start, end time.Time, source model.AccessSource) error {
	var existing model.BookAccessModel
	err := tx.Where("access_user_id = ? AND access_book_id = ?", userID, bookID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.BookAccessModel{
			AccessUserID:    userID,
			AccessBookID:    bookID,
			AccessStartDate: start,
			AccessEndDate:   end,
			AccessIsActive:  true,
			AccessStatus:    model.AccessStatusActive,
			AccessSource:    source,
		}).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"access_status":    model.AccessStatusActive,
		"access_is_active": true,
		"access_source":    source,
	}
	if end.After(existing.AccessEndDate) {
		updates["access_end_date"] = end
	}
	if start.Before(existing.AccessStartDate) || !existing.EffectivelyActive(time.Now()) {
		updates["access_start_date"] = start
	}
	return tx.Model(&model.BookAccessModel{}).
		Where("access_id = ?", existing.AccessID).
		Updates(updates).Error
}
