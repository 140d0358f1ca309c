package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"pustakaedu_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar urut: recovery → cors → logger → rate limiter
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
