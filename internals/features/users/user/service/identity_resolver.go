// file: internals/features/users/user/service/identity_resolver.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	orgModel "pustakaedu_backend/internals/features/organization/model"
	"pustakaedu_backend/internals/features/users/user/model"
	"pustakaedu_backend/internals/helpers/errs"
)

// ResolvedUser adalah hasil identity resolution: user + role set + keanggotaan organisasi.
// Semua komponen lain (resolver akses, alokasi lisensi) bergantung ke sini.
type ResolvedUser struct {
	User     model.UserModel `json:"user"`
	Roles    []string        `json:"roles"`
	SchoolID *uuid.UUID      `json:"school_id,omitempty"`
	GroupIDs []uuid.UUID     `json:"group_ids"`
	GradeIDs []uuid.UUID     `json:"grade_ids"`
}

// HasRole — evaluasi "has role", user boleh memegang banyak role.
func (r *ResolvedUser) HasRole(role string) bool {
	for _, have := range r.Roles {
		if have == role {
			return true
		}
	}
	return false
}

// ResolveByID memuat user aktif + roles + group/grade membership.
func ResolveByID(db *gorm.DB, userID uuid.UUID) (*ResolvedUser, error) {
	var u model.UserModel
	if err := db.Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return hydrate(db, u)
}

// ResolveByEmail dipakai saat menerjemahkan session identity provider ke user internal.
// Klaim role yang menempel di session TIDAK dipercaya — role dibaca ulang dari DB.
func ResolveByEmail(db *gorm.DB, email string) (*ResolvedUser, error) {
	var u model.UserModel
	if err := db.Where("user_email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return hydrate(db, u)
}

// ResolveByExternalID — jalur kedua dari session provider (external id lebih stabil dari email).
func ResolveByExternalID(db *gorm.DB, externalID string) (*ResolvedUser, error) {
	var u model.UserModel
	if err := db.Where("user_external_id = ?", externalID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return hydrate(db, u)
}

func hydrate(db *gorm.DB, u model.UserModel) (*ResolvedUser, error) {
	resolved := &ResolvedUser{User: u, SchoolID: u.UserSchoolID}

	if err := db.Model(&model.UserRoleModel{}).
		Where("user_role_user_id = ?", u.UserID).
		Pluck("user_role_role", &resolved.Roles).Error; err != nil {
		return nil, err
	}

	// Group membership user
	if err := db.Model(&orgModel.GroupMemberModel{}).
		Where("group_member_user_id = ?", u.UserID).
		Pluck("group_member_group_id", &resolved.GroupIDs).Error; err != nil {
		return nil, err
	}

	// Grade dijangkau lewat group (distinct)
	if len(resolved.GroupIDs) > 0 {
		if err := db.Model(&orgModel.GroupModel{}).
			Distinct("group_grade_id").
			Where("group_id IN ?", resolved.GroupIDs).
			Pluck("group_grade_id", &resolved.GradeIDs).Error; err != nil {
			return nil, err
		}
	}

	return resolved, nil
}
