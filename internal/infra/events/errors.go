package events

import "errors"

var (
	// ErrChannel возвращается при ошибке открытия или настройки канала
	ErrChannel = errors.New("events: channel setup failed")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: publish failed")

	// ErrDecode возвращается при некорректном теле события
	ErrDecode = errors.New("events: failed to decode event")
)
