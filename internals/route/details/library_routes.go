// file: internals/route/details/library_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accessController "pustakaedu_backend/internals/features/library/access/controller"
)

func LibraryRoutes(public fiber.Router, private fiber.Router, admin fiber.Router, db *gorm.DB) {
	access := accessController.NewAccessController(db)
	accessAdmin := accessController.NewAccessAdminController(db)

	// anonim: hanya buku gratis yang lolos
	public.Get("/books/:sanity_id/access", access.ResolvePublicAccess)

	// user: dipanggil viewer di tiap page view
	private.Get("/books/:sanity_id/access", access.ResolveAccess)
	private.Get("/my-books", access.MyAccesses)

	// admin: grant/revoke + assignment + lisensi
	admin.Post("/access/grant", accessAdmin.GrantBulk)
	admin.Post("/access/revoke", accessAdmin.RevokeBulk)
	admin.Post("/assignments", accessAdmin.CreateAssignment)
	admin.Patch("/assignments/:id/deactivate", accessAdmin.DeactivateAssignment)
	admin.Post("/licenses", accessAdmin.CreateLicense)
}
