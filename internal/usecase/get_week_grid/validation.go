package get_week_grid

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// validateRequest проверяет входные данные и заполняет значения по умолчанию
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SessionID == nil && strings.TrimSpace(req.LocationID) == "" {
		return fmt.Errorf("%w: location_id or session_id is required", ErrInvalidInput)
	}

	switch req.Mode {
	case "":
		req.Mode = domain.ViewDonor
	case domain.ViewDonor, domain.ViewStaff:
	default:
		return fmt.Errorf("%w: unknown view mode %q", ErrInvalidInput, req.Mode)
	}

	return nil
}
