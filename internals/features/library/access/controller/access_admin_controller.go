// file: internals/features/library/access/controller/access_admin_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/library/access/dto"
	"pustakaedu_backend/internals/features/library/access/model"
	accessService "pustakaedu_backend/internals/features/library/access/service"
	licenseModel "pustakaedu_backend/internals/features/library/licenses/model"
	helper "pustakaedu_backend/internals/helpers"
)

var validate = validator.New()

type AccessAdminController struct {
	DB *gorm.DB
}

func NewAccessAdminController(db *gorm.DB) *AccessAdminController {
	return &AccessAdminController{DB: db}
}

// 🟢 GRANT BULK: beri akses per scope (individual/school/grade/group).
// Idempotent per (user, book); batch ditolak utuh bila pool kursi tidak cukup.
func (ctrl *AccessAdminController) GrantBulk(c *fiber.Ctx) error {
	var body dto.GrantBulkRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := accessService.GrantBulk(ctrl.DB, accessService.GrantBulkInput{
		BookID:   body.BookID,
		SchoolID: body.SchoolID,
		Scope: accessService.GrantScope{
			Type:     accessService.ScopeType(body.ScopeType),
			TargetID: body.TargetID,
			UserIDs:  body.UserIDs,
		},
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Source:    model.AccessSourceAdmin,
	})
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Akses berhasil diberikan", result)
}

// 🟢 REVOKE BULK: cabut akses langsung sejumlah user untuk satu buku
func (ctrl *AccessAdminController) RevokeBulk(c *fiber.Ctx) error {
	var body dto.RevokeBulkRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := accessService.RevokeBulk(ctrl.DB, body.BookID, body.UserIDs, body.SchoolID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Akses berhasil dicabut", result)
}

// 🟢 CREATE ASSIGNMENT: grant hierarkis — keanggotaan dievaluasi saat resolve,
// tidak di-fan-out per user
func (ctrl *AccessAdminController) CreateAssignment(c *fiber.Ctx) error {
	var body dto.CreateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	assignment := model.BookAssignmentModel{
		AssignmentBookSanityID: body.BookSanityID,
		AssignmentTargetType:   model.AssignmentTargetType(body.TargetType),
		AssignmentTargetID:     body.TargetID,
		AssignmentEndDate:      body.EndDate,
		AssignmentIsActive:     true,
	}
	if err := ctrl.DB.Create(&assignment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan assignment")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Assignment dibuat", assignment)
}

// 🟢 DEACTIVATE ASSIGNMENT
func (ctrl *AccessAdminController) DeactivateAssignment(c *fiber.Ctx) error {
	id := c.Params("id")
	res := ctrl.DB.Model(&model.BookAssignmentModel{}).
		Where("assignment_id = ?", id).
		Update("assignment_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menonaktifkan assignment")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Assignment tidak ditemukan")
	}
	return helper.Success(c, "Assignment dinonaktifkan", nil)
}

// 🟢 CREATE LICENSE: pool kursi sekolah untuk satu buku
func (ctrl *AccessAdminController) CreateLicense(c *fiber.Ctx) error {
	var body dto.CreateLicenseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	lic := licenseModel.SchoolBookLicenseModel{
		LicenseSchoolID:  body.SchoolID,
		LicenseBookID:    body.BookID,
		LicenseTotal:     body.Total,
		LicenseStartDate: body.StartDate,
		LicenseEndDate:   body.EndDate,
		LicenseIsActive:  true,
	}
	if err := ctrl.DB.Create(&lic).Error; err != nil {
		return helper.Error(c, fiber.StatusConflict, "Lisensi untuk sekolah+buku ini sudah ada")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lisensi dibuat", lic)
}
