// file: internals/route/details/payment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookService "pustakaedu_backend/internals/features/library/books/service"
	paymentController "pustakaedu_backend/internals/features/payment/controller"
	"pustakaedu_backend/internals/middlewares"
)

func PaymentRoutes(public fiber.Router, private fiber.Router, db *gorm.DB, catalog bookService.CatalogClient) {
	checkout := paymentController.NewCheckoutController(db, catalog)
	webhook := paymentController.NewWebhookController(db, catalog)

	// webhook Midtrans — TANPA JWT, di-skip juga oleh AuthMiddleware
	public.Post("/payments/notification", webhook.HandleMidtransNotification)

	private.Post("/payments/checkout", middlewares.CheckoutRateLimiter(), checkout.CreateCheckout)
	private.Get("/payments/transactions", checkout.MyTransactions)
	private.Get("/subscriptions", checkout.MySubscriptions)
	private.Post("/subscriptions/:id/cancel", checkout.CancelSubscription)
}
