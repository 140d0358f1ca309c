// file: internals/features/payment/controller/webhook_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookService "pustakaedu_backend/internals/features/library/books/service"
	"pustakaedu_backend/internals/features/payment/dto"
	paymentService "pustakaedu_backend/internals/features/payment/service"
)

type WebhookController struct {
	DB      *gorm.DB
	Catalog bookService.CatalogClient
}

func NewWebhookController(db *gorm.DB, catalog bookService.CatalogClient) *WebhookController {
	return &WebhookController{DB: db, Catalog: catalog}
}

// 🟢 HANDLE MIDTRANS WEBHOOK: reconcile event pembayaran → entitlement.
// Error diproses = balas 500 supaya Midtrans retry, JANGAN di-ack.
func (ctrl *WebhookController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body dto.MidtransNotification
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook",
		})
	}

	log.Printf("Received webhook: order_id=%s status=%s", body.OrderID, body.TransactionStatus)

	err := paymentService.HandlePaymentNotification(c.UserContext(), ctrl.DB, ctrl.Catalog, paymentService.PaymentNotification{
		OrderID:           body.OrderID,
		TransactionStatus: body.TransactionStatus,
		FraudStatus:       body.FraudStatus,
	})
	if err != nil {
		log.Println("[ERROR] Webhook gagal:", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}
