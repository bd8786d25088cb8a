package capacities

import "errors"

var (
	// ErrCapacityNotFound возвращается, когда слот не найден в backend
	ErrCapacityNotFound = errors.New("capacity not found")

	// ErrUnknownHourBucket возвращается, когда часы слота не входят в каталог периода
	ErrUnknownHourBucket = errors.New("hour bucket is not in the catalog for this time slot")

	// ErrInvalidDateRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("expiry date is before effective date")

	// ErrRejected возвращается, когда backend отклонил команду; сообщение backend доступно через capacityapi.ServerMessage
	ErrRejected = errors.New("capacity command rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
