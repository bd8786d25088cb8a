package submit_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound возвращается, когда сессия бронирования не найдена
	ErrSessionNotFound = errors.New("submit_booking: booking session not found")

	// ErrSessionClosed возвращается, когда сессия уже подтверждена или отменена
	ErrSessionClosed = errors.New("submit_booking: booking session is closed")

	// ErrNoSelection возвращается, когда в сессии не выбрана ячейка
	ErrNoSelection = errors.New("submit_booking: no slot selected")

	// ErrSelectionExpired возвращается, когда выбранная ячейка ушла в прошлое
	ErrSelectionExpired = errors.New("submit_booking: selected slot is in the past")

	// ErrSubmissionInProgress возвращается, когда заявка по сессии уже отправляется
	ErrSubmissionInProgress = errors.New("submit_booking: submission already in progress")

	// ErrSubmissionFailed возвращается, когда backend не принял заявку
	ErrSubmissionFailed = errors.New("submit_booking: submission failed")

	// ErrCancelled возвращается, когда клиент ушел до ответа backend
	ErrCancelled = errors.New("submit_booking: request cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// SubmissionError отказ backend. Message показывается пользователю без изменений.
type SubmissionError struct {
	Message  string
	Rejected bool // backend отклонил данные заявки (4xx), а не был недоступен
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSubmissionFailed, e.Message)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrSubmissionFailed)
func (e *SubmissionError) Unwrap() error {
	return ErrSubmissionFailed
}
