package submit_booking

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SessionID == uuid.Nil {
		return fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	return nil
}
