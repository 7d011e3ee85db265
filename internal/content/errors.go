package content

import (
	"errors"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

// ErrorClass groups failures by what the admin can do about them.
type ErrorClass string

const (
	ClassValidation    ErrorClass = "validation"     // fix the named field
	ClassNotFound      ErrorClass = "not_found"      // record is gone, reload
	ClassPermission    ErrorClass = "permission"     // contact the site owner
	ClassTransient     ErrorClass = "transient"      // retry later
	ClassNotConfigured ErrorClass = "not_configured" // storage is not set up
	ClassConflict      ErrorClass = "conflict"       // a submit is still running
	ClassInternal      ErrorClass = "internal"
)

// Classify maps an error returned by this package to its class.
func Classify(err error) ErrorClass {
	if _, ok := domain.AsValidation(err); ok {
		return ClassValidation
	}
	switch {
	case errors.Is(err, ErrMissingID):
		return ClassValidation
	case errors.Is(err, ErrSubmitInFlight), errors.Is(err, ErrNotEditing):
		return ClassConflict
	case errors.Is(err, store.ErrNotFound):
		return ClassNotFound
	case errors.Is(err, store.ErrPermissionDenied):
		return ClassPermission
	case errors.Is(err, store.ErrNotConfigured):
		return ClassNotConfigured
	case errors.Is(err, store.ErrUnavailable):
		return ClassTransient
	default:
		return ClassInternal
	}
}
