// file: internals/features/library/access/controller/access_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/library/access/model"
	accessService "pustakaedu_backend/internals/features/library/access/service"
	bookModel "pustakaedu_backend/internals/features/library/books/model"
	helper "pustakaedu_backend/internals/helpers"
)

type AccessController struct {
	DB *gorm.DB
}

func NewAccessController(db *gorm.DB) *AccessController {
	return &AccessController{DB: db}
}

// 🟢 RESOLVE: keputusan boleh/tidaknya user membuka buku — dipanggil viewer
// di setiap page view, murni read.
func (ctrl *AccessController) ResolveAccess(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	sanityID := c.Params("sanity_id")
	if sanityID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "sanity_id wajib diisi")
	}

	decision, err := accessService.ResolveAccess(ctrl.DB, userID, sanityID, time.Now())
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "OK", decision)
}

// 🟢 PUBLIC RESOLVE: cek buku gratis tanpa login — hanya flag public yang
// bisa meloloskan, mekanisme lain butuh identitas.
func (ctrl *AccessController) ResolvePublicAccess(c *fiber.Ctx) error {
	sanityID := c.Params("sanity_id")
	if sanityID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "sanity_id wajib diisi")
	}

	var book bookModel.BookModel
	err := ctrl.DB.Where("book_sanity_id = ?", sanityID).First(&book).Error
	if err == nil && book.BookIsActive && book.BookIsPublic {
		return helper.Success(c, "OK", accessService.AccessDecision{
			Granted: true,
			Reason:  accessService.ReasonPublic,
		})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa buku")
	}
	return helper.Success(c, "OK", accessService.AccessDecision{
		Granted: false,
		Reason:  accessService.ReasonNotAssigned,
	})
}

// 🟢 MY BOOKS: daftar grant langsung milik user (buat rak "buku saya")
func (ctrl *AccessController) MyAccesses(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	p := helper.ParsePagination(c)
	var accesses []model.BookAccessModel
	if err := ctrl.DB.Where("access_user_id = ?", userID).
		Order("access_created_at desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&accesses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data akses")
	}
	return helper.Success(c, "OK", accesses)
}
