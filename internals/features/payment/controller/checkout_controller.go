// file: internals/features/payment/controller/checkout_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookService "pustakaedu_backend/internals/features/library/books/service"
	"pustakaedu_backend/internals/features/payment/dto"
	"pustakaedu_backend/internals/features/payment/model"
	paymentService "pustakaedu_backend/internals/features/payment/service"
	helper "pustakaedu_backend/internals/helpers"
)

var validate = validator.New()

type CheckoutController struct {
	DB      *gorm.DB
	Catalog bookService.CatalogClient
}

func NewCheckoutController(db *gorm.DB, catalog bookService.CatalogClient) *CheckoutController {
	return &CheckoutController{DB: db, Catalog: catalog}
}

// 🟢 CREATE CHECKOUT: buat sesi Snap + transaksi PENDING
func (ctrl *CheckoutController) CreateCheckout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	var body dto.CreateCheckoutRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.PurchaseType == string(model.PurchaseSubscription) && body.Plan == "" {
		return helper.Error(c, fiber.StatusBadRequest, "plan wajib diisi untuk subscription")
	}

	result, err := paymentService.CreateCheckout(c.UserContext(), ctrl.DB, ctrl.Catalog, paymentService.CheckoutInput{
		UserID:       userID,
		BookSanityID: body.BookSanityID,
		PurchaseType: model.PurchaseType(body.PurchaseType),
		Plan:         model.PlanType(body.Plan),
		CouponCode:   body.CouponCode,
	})
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Checkout dibuat. Silakan lanjutkan pembayaran.", result)
}

// 🟢 MY TRANSACTIONS: riwayat transaksi user
func (ctrl *CheckoutController) MyTransactions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	p := helper.ParsePagination(c)
	var trxs []model.TransactionModel
	if err := ctrl.DB.Where("transaction_user_id = ?", userID).
		Order("transaction_created_at desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&trxs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data transaksi")
	}
	return helper.Success(c, "OK", trxs)
}

// 🟢 MY SUBSCRIPTIONS
func (ctrl *CheckoutController) MySubscriptions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	subs, err := paymentService.ListForUser(ctrl.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data langganan")
	}
	return helper.Success(c, "OK", subs)
}

// 🟢 CANCEL SUBSCRIPTION: matikan auto-renew; akses periode berjalan tetap
func (ctrl *CheckoutController) CancelSubscription(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.DomainError(c, err)
	}

	subID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "subscription id tidak valid")
	}

	if err := paymentService.CancelSubscription(ctrl.DB, userID, subID); err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Langganan dibatalkan. Akses tetap aktif sampai akhir periode.", nil)
}
