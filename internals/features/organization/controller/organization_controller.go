// file: internals/features/organization/controller/organization_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/organization/dto"
	"pustakaedu_backend/internals/features/organization/model"
	"pustakaedu_backend/internals/features/organization/service"
	helper "pustakaedu_backend/internals/helpers"
)

var validate = validator.New()

type OrganizationController struct {
	DB *gorm.DB
}

func NewOrganizationController(db *gorm.DB) *OrganizationController {
	return &OrganizationController{DB: db}
}

/* =========================
   Struktur: school / grade / group
========================= */

// 🟢 CREATE SCHOOL
func (ctrl *OrganizationController) CreateSchool(c *fiber.Ctx) error {
	var body dto.CreateSchoolRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	school := model.SchoolModel{
		SchoolName:     body.SchoolName,
		SchoolSlug:     body.SchoolSlug,
		SchoolIsActive: true,
	}
	if err := ctrl.DB.Create(&school).Error; err != nil {
		return helper.Error(c, fiber.StatusConflict, "Slug sekolah sudah dipakai")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Sekolah dibuat", school)
}

// 🟢 CREATE GRADE
func (ctrl *OrganizationController) CreateGrade(c *fiber.Ctx) error {
	var body dto.CreateGradeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	grade := model.GradeModel{
		GradeSchoolID: body.SchoolID,
		GradeName:     body.GradeName,
		GradeLevel:    body.GradeLevel,
	}
	if err := ctrl.DB.Create(&grade).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan grade")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Grade dibuat", grade)
}

// 🟢 CREATE GROUP
func (ctrl *OrganizationController) CreateGroup(c *fiber.Ctx) error {
	var body dto.CreateGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	group := model.GroupModel{
		GroupGradeID:   body.GradeID,
		GroupName:      body.GroupName,
		GroupTeacherID: body.TeacherID,
	}
	if err := ctrl.DB.Create(&group).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan group")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Group dibuat", group)
}

/* =========================
   Keanggotaan
========================= */

// 🟢 ADD MEMBER (idempotent)
func (ctrl *OrganizationController) AddMember(c *fiber.Ctx) error {
	var body dto.MemberRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.AddMember(ctrl.DB, body.GroupID, body.UserID); err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Anggota ditambahkan", nil)
}

// 🟢 REMOVE MEMBER
func (ctrl *OrganizationController) RemoveMember(c *fiber.Ctx) error {
	var body dto.MemberRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.RemoveMember(ctrl.DB, body.GroupID, body.UserID); err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Anggota dikeluarkan", nil)
}

// 🟢 MOVE STUDENT: pindah group dalam satu grade, atomik
func (ctrl *OrganizationController) MoveStudent(c *fiber.Ctx) error {
	var body dto.MoveStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.MoveStudent(ctrl.DB, body.FromGroupID, body.ToGroupID, body.UserID); err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Siswa dipindahkan", nil)
}

// 🟢 ASSIGN COORDINATOR: satu coordinator = satu sekolah
func (ctrl *OrganizationController) AssignCoordinator(c *fiber.Ctx) error {
	var body dto.AssignCoordinatorRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.AssignCoordinator(ctrl.DB, body.SchoolID, body.UserID); err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Coordinator ditetapkan", nil)
}
