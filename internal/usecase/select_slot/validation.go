package select_slot

import (
	"fmt"
	"strings"

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

	if strings.TrimSpace(req.CapacitySlotID) == "" {
		return fmt.Errorf("%w: capacity_slot_id is required", ErrInvalidInput)
	}

	return nil
}
