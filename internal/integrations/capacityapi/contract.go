package capacityapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder принимает длительность запросов к backend
type Recorder interface {
	ObserveCapacityAPI(operation, outcome string, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveCapacityAPI(string, string, time.Duration) {}
