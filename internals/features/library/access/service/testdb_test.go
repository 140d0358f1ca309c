// file: internals/features/library/access/service/testdb_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"pustakaedu_backend/internals/features/library/access/model"
	bookModel "pustakaedu_backend/internals/features/library/books/model"
	licenseModel "pustakaedu_backend/internals/features/library/licenses/model"
	notificationModel "pustakaedu_backend/internals/features/notifications/model"
	orgModel "pustakaedu_backend/internals/features/organization/model"
	userModel "pustakaedu_backend/internals/features/users/user/model"
)

// openTestDB — sqlite in-memory, satu koneksi supaya semua query dan
// transaksi melihat database yang sama.
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
		&userModel.UserModel{},
		&userModel.UserRoleModel{},
		&orgModel.SchoolModel{},
		&orgModel.GradeModel{},
		&orgModel.GroupModel{},
		&orgModel.GroupMemberModel{},
		&bookModel.BookModel{},
		&licenseModel.SchoolBookLicenseModel{},
		&model.BookAccessModel{},
		&model.BookAssignmentModel{},
		&notificationModel.NotificationModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, schoolID *uuid.UUID) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName:     "Siswa Uji",
		UserEmail:    uuid.NewString() + "@test.local",
		UserPassword: "rahasia-sekali",
		UserSchoolID: schoolID,
		UserIsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBook(t *testing.T, db *gorm.DB, sanityID string, public bool) *bookModel.BookModel {
	t.Helper()
	b := &bookModel.BookModel{
		BookSanityID: sanityID,
		BookTitle:    "Matematika Kelas 5",
		BookIsActive: true,
		BookIsPublic: public,
		BookPrice:    75000,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedSchool(t *testing.T, db *gorm.DB) *orgModel.SchoolModel {
	t.Helper()
	s := &orgModel.SchoolModel{
		SchoolName:     "SD Harapan",
		SchoolSlug:     "sd-harapan-" + uuid.NewString()[:8],
		SchoolIsActive: true,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed school: %v", err)
	}
	return s
}

func seedGroupWithGrade(t *testing.T, db *gorm.DB, schoolID uuid.UUID) (*orgModel.GradeModel, *orgModel.GroupModel) {
	t.Helper()
	grade := &orgModel.GradeModel{GradeSchoolID: schoolID, GradeName: "Kelas 5", GradeLevel: 5}
	if err := db.Create(grade).Error; err != nil {
		t.Fatalf("seed grade: %v", err)
	}
	group := &orgModel.GroupModel{GroupGradeID: grade.GradeID, GroupName: "5A"}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return grade, group
}

func addToGroup(t *testing.T, db *gorm.DB, groupID, userID uuid.UUID) {
	t.Helper()
	if err := db.Create(&orgModel.GroupMemberModel{
		GroupMemberGroupID: groupID,
		GroupMemberUserID:  userID,
	}).Error; err != nil {
		t.Fatalf("add member: %v", err)
	}
}

func seedAccess(t *testing.T, db *gorm.DB, userID, bookID uuid.UUID, status model.AccessStatus, start, end time.Time) *model.BookAccessModel {
	t.Helper()
	a := &model.BookAccessModel{
		AccessUserID:    userID,
		AccessBookID:    bookID,
		AccessStartDate: start,
		AccessEndDate:   end,
		AccessIsActive:  status == model.AccessStatusActive,
		AccessStatus:    status,
		AccessSource:    model.AccessSourceAdmin,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed access: %v", err)
	}
	return a
}

func seedAssignment(t *testing.T, db *gorm.DB, sanityID string, targetType model.AssignmentTargetType, targetID uuid.UUID, end *time.Time) *model.BookAssignmentModel {
	t.Helper()
	a := &model.BookAssignmentModel{
		AssignmentBookSanityID: sanityID,
		AssignmentTargetType:   targetType,
		AssignmentTargetID:     targetID,
		AssignmentEndDate:      end,
		AssignmentIsActive:     true,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return a
}
