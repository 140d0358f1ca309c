package constants

import "fmt"

// Nama role — user bisa memegang lebih dari satu (evaluasi "has role", bukan "is role")
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleTeacher     = "teacher"
	RoleStudent     = "student"
	RolePublic      = "public"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess     = "❌ Hanya teacher, coordinator, atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess       = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyCoordinatorsCanAccess = "❌ Hanya coordinator atau admin yang boleh mengakses fitur %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorCoordinator(feature string) string {
	return fmt.Sprintf(ErrOnlyCoordinatorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleCoordinator,
		RoleTeacher,
		RoleStudent,
		RolePublic,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleCoordinator,
		RoleAdmin,
	}

	CoordinatorAndAbove = []string{
		RoleCoordinator,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
