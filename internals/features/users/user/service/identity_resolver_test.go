// file: internals/features/users/user/service/identity_resolver_test.go
package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	orgModel "pustakaedu_backend/internals/features/organization/model"
	"pustakaedu_backend/internals/features/users/user/model"
	"pustakaedu_backend/internals/helpers/errs"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.UserRoleModel{},
		&orgModel.SchoolModel{},
		&orgModel.GradeModel{},
		&orgModel.GroupModel{},
		&orgModel.GroupMemberModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestResolveHydratesRolesAndMembership(t *testing.T) {
	db := openTestDB(t)

	school := orgModel.SchoolModel{SchoolName: "SD Cendekia", SchoolSlug: "sd-cendekia", SchoolIsActive: true}
	if err := db.Create(&school).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	grade := orgModel.GradeModel{GradeSchoolID: school.SchoolID, GradeName: "Kelas 6", GradeLevel: 6}
	if err := db.Create(&grade).Error; err != nil {
		t.Fatalf("seed grade: %v", err)
	}
	group := orgModel.GroupModel{GroupGradeID: grade.GradeID, GroupName: "6A"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}

	extID := "provider-abc-123"
	user := model.UserModel{
		UserName:       "Budi",
		UserEmail:      "budi@test.local",
		UserPassword:   "rahasia-sekali",
		UserExternalID: &extID,
		UserSchoolID:   &school.SchoolID,
		UserIsActive:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	for _, role := range []string{"student", "teacher"} {
		if err := db.Create(&model.UserRoleModel{UserRoleUserID: user.UserID, UserRoleRole: role}).Error; err != nil {
			t.Fatalf("seed role %s: %v", role, err)
		}
	}
	if err := db.Create(&orgModel.GroupMemberModel{GroupMemberGroupID: group.GroupID, GroupMemberUserID: user.UserID}).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	check := func(resolved *ResolvedUser, err error, via string) {
		t.Helper()
		if err != nil {
			t.Fatalf("resolve via %s: %v", via, err)
		}
		if !resolved.HasRole("student") || !resolved.HasRole("teacher") {
			t.Fatalf("via %s: roles = %v", via, resolved.Roles)
		}
		if resolved.HasRole("admin") {
			t.Fatalf("via %s: role admin tidak pernah diberikan", via)
		}
		if resolved.SchoolID == nil || *resolved.SchoolID != school.SchoolID {
			t.Fatalf("via %s: school = %v", via, resolved.SchoolID)
		}
		if len(resolved.GroupIDs) != 1 || resolved.GroupIDs[0] != group.GroupID {
			t.Fatalf("via %s: groups = %v", via, resolved.GroupIDs)
		}
		if len(resolved.GradeIDs) != 1 || resolved.GradeIDs[0] != grade.GradeID {
			t.Fatalf("via %s: grades = %v", via, resolved.GradeIDs)
		}
	}

	resolved, err := ResolveByID(db, user.UserID)
	check(resolved, err, "id")
	resolved, err = ResolveByEmail(db, "budi@test.local")
	check(resolved, err, "email")
	resolved, err = ResolveByExternalID(db, extID)
	check(resolved, err, "external id")
}

func TestResolveUnknownUser(t *testing.T) {
	db := openTestDB(t)

	if _, err := ResolveByID(db, uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := ResolveByEmail(db, "tidak-ada@test.local"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
