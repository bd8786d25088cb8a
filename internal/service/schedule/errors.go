package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// ErrInvalidSelection возвращается при попытке выбрать недоступную ячейку
var ErrInvalidSelection = errors.New("invalid selection")

// SelectionError причина отказа в выборе ячейки
type SelectionError struct {
	Reason domain.CellReason
	SlotID string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%v: slot=%s reason=%s", ErrInvalidSelection, e.SlotID, e.Reason)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidSelection)
func (e *SelectionError) Unwrap() error {
	return ErrInvalidSelection
}

func invalidSelection(slotID string, reason domain.CellReason) error {
	return &SelectionError{Reason: reason, SlotID: slotID}
}

// ReasonOf возвращает причину отказа, если err получен из Select
func ReasonOf(err error) (domain.CellReason, bool) {
	var selErr *SelectionError
	if errors.As(err, &selErr) {
		return selErr.Reason, true
	}
	return domain.ReasonNone, false
}
