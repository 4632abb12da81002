package affiliates

import (
	"errors"

	"github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
)

// classifyCreateError translates a storage uniqueness violation on the dni key
// into the domain conflict error. Every other error, including uniqueness
// violations on other fields, is returned unchanged; callers must not assume
// all persistence errors have been classified.
func classifyCreateError(err error) error {
	uv := (*affiliaterepo.UniqueViolationError)(nil)
	if errors.As(err, &uv) && uv.Field == "dni" {
		return &Error{
			Status:  409,
			Code:    "DNI_CONFLICT",
			Message: "DNI already exists",
		}
	}
	return err
}
