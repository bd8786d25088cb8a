package events

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Invalidator сбрасывает закэшированные данные локации
type Invalidator interface {
	Invalidate(locationID string)
}
