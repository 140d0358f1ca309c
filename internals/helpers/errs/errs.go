// file: internals/helpers/errs/errs.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel error domain — dipetakan ke status HTTP di satu tempat (HTTPStatus)
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("license capacity exceeded")
	ErrEmptyScope       = errors.New("scope resolves to zero users")
	ErrExternalService  = errors.New("external service error")
	ErrIdempotentNoop   = errors.New("duplicate event, already processed")
)

// CapacityError membawa detail sisa kursi untuk pesan user-facing.
type CapacityError struct {
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("license capacity exceeded: requested %d, remaining %d", e.Requested, e.Remaining)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

func NewCapacity(requested, remaining int) error {
	return &CapacityError{Requested: requested, Remaining: remaining}
}

// ScopeEmptyError — pesan berbeda per jenis scope (school/grade/group/individual).
type ScopeEmptyError struct {
	ScopeType string
}

func (e *ScopeEmptyError) Error() string {
	switch e.ScopeType {
	case "school":
		return "sekolah ini belum memiliki user aktif"
	case "grade":
		return "grade ini belum memiliki siswa"
	case "group":
		return "group ini belum memiliki anggota"
	default:
		return "daftar user kosong"
	}
}

func (e *ScopeEmptyError) Unwrap() error { return ErrEmptyScope }

func NewEmptyScope(scopeType string) error {
	return &ScopeEmptyError{ScopeType: scopeType}
}

// HTTPStatus memetakan error domain ke kode HTTP.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmptyScope):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrCapacityExceeded):
		return fiber.StatusConflict
	case errors.Is(err, ErrExternalService):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrIdempotentNoop):
		return fiber.StatusOK
	default:
		return fiber.StatusInternalServerError
	}
}
