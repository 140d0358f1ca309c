// file: internals/features/library/access/dto/access_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type GrantBulkRequest struct {
	BookID    uuid.UUID   `json:"book_id" validate:"required"`
	SchoolID  uuid.UUID   `json:"school_id" validate:"required"`
	ScopeType string      `json:"scope_type" validate:"required,oneof=individual school grade group"`
	TargetID  uuid.UUID   `json:"target_id"`
	UserIDs   []uuid.UUID `json:"user_ids,omitempty"`
	StartDate time.Time   `json:"start_date" validate:"required"`
	EndDate   time.Time   `json:"end_date" validate:"required"`
}

type RevokeBulkRequest struct {
	BookID   uuid.UUID   `json:"book_id" validate:"required"`
	SchoolID uuid.UUID   `json:"school_id" validate:"required"`
	UserIDs  []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}

type CreateAssignmentRequest struct {
	BookSanityID string     `json:"book_sanity_id" validate:"required"`
	TargetType   string     `json:"target_type" validate:"required,oneof=school grade group teacher student"`
	TargetID     uuid.UUID  `json:"target_id" validate:"required"`
	EndDate      *time.Time `json:"end_date,omitempty"` // null = tanpa batas
}

type CreateLicenseRequest struct {
	SchoolID  uuid.UUID `json:"school_id" validate:"required"`
	BookID    uuid.UUID `json:"book_id" validate:"required"`
	Total     int       `json:"total" validate:"required,min=1"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}
