// file: internals/route/details/organization_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgController "pustakaedu_backend/internals/features/organization/controller"
)

func OrganizationRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrganizationController(db)

	admin.Post("/schools", ctrl.CreateSchool)
	admin.Post("/grades", ctrl.CreateGrade)
	admin.Post("/groups", ctrl.CreateGroup)

	admin.Post("/groups/members", ctrl.AddMember)
	admin.Delete("/groups/members", ctrl.RemoveMember)
	admin.Post("/groups/move-student", ctrl.MoveStudent)
	admin.Post("/schools/coordinator", ctrl.AssignCoordinator)
}
