// file: internals/features/organization/dto/organization_dto.go
package dto

import "github.com/google/uuid"

type CreateSchoolRequest struct {
	SchoolName string `json:"school_name" validate:"required,min=3,max=100"`
	SchoolSlug string `json:"school_slug" validate:"required,min=3,max=100"`
}

type CreateGradeRequest struct {
	SchoolID   uuid.UUID `json:"school_id" validate:"required"`
	GradeName  string    `json:"grade_name" validate:"required,max=50"`
	GradeLevel int       `json:"grade_level"`
}

type CreateGroupRequest struct {
	GradeID   uuid.UUID  `json:"grade_id" validate:"required"`
	GroupName string     `json:"group_name" validate:"required,max=50"`
	TeacherID *uuid.UUID `json:"teacher_id,omitempty"`
}

type MemberRequest struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
	UserID  uuid.UUID `json:"user_id" validate:"required"`
}

type MoveStudentRequest struct {
	FromGroupID uuid.UUID `json:"from_group_id" validate:"required"`
	ToGroupID   uuid.UUID `json:"to_group_id" validate:"required"`
	UserID      uuid.UUID `json:"user_id" validate:"required"`
}

type AssignCoordinatorRequest struct {
	SchoolID uuid.UUID `json:"school_id" validate:"required"`
	UserID   uuid.UUID `json:"user_id" validate:"required"`
}
