package schedule

import (
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/pkg/clock"
)

// Service строит недельную сетку вместимости и решает, какие ячейки доступны для выбора.
// Все операции чистые: результат зависит только от аргументов, каталога и часового пояса.
type Service struct {
	clock    *clock.Clock
	catalog  *domain.Catalog
	logger   Logger
	recorder AnomalyRecorder
}

// NewService создает новый экземпляр сервиса расписания
func NewService(clk *clock.Clock, catalog *domain.Catalog, logger Logger, recorder AnomalyRecorder) *Service {
	if catalog == nil {
		catalog = domain.DefaultCatalog
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{
		clock:    clk,
		catalog:  catalog,
		logger:   logger,
		recorder: recorder,
	}
}

// Catalog возвращает каталог часовых интервалов
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// Clock возвращает часы локации
func (s *Service) Clock() *clock.Clock {
	return s.clock
}

// HourBuckets возвращает интервалы периода в порядке отображения
func (s *Service) HourBuckets(ts domain.TimeSlot) []domain.HourBucket {
	return s.catalog.HourBuckets(ts)
}

// BuildWeek строит неделю, содержащую anchor, в часовом поясе локации
func (s *Service) BuildWeek(anchor time.Time) domain.Week {
	return domain.BuildWeek(s.clock.Local(anchor))
}

// CurrentWeek возвращает неделю, содержащую текущий момент
func (s *Service) CurrentWeek() domain.Week {
	return domain.CurrentWeek(s.clock.Now())
}
