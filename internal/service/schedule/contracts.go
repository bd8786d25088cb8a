package schedule

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AnomalyRecorder принимает аномалии данных для метрик
type AnomalyRecorder interface {
	RecordAnomaly(kind string)
}

type noopRecorder struct{}

func (noopRecorder) RecordAnomaly(string) {}
