// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "pustakaedu_backend/internals/features/users/auth/controller"
	"pustakaedu_backend/internals/middlewares"
)

func AuthRoutes(public fiber.Router, private fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	public.Post("/auth/register", ctrl.Register)
	public.Post("/auth/login", middlewares.LoginRateLimiter(), ctrl.Login)

	private.Get("/auth/me", ctrl.Me)
}
