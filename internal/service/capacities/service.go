package capacities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/infra/events"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
	"github.com/m04kA/SMC-CapacityService/pkg/clock"
)

// Service сервис команд персонала над слотами вместимости.
// В каждой локации одновременно выполняется одна команда; после нее кэш локации
// загружается заново, без локального исправления данных.
type Service struct {
	client    CapacityClient
	refresher Refresher
	publisher ChangePublisher
	locker    Locker
	clock     *clock.Clock
	catalog   *domain.Catalog
	validate  *validator.Validate
	logger    Logger
}

// NewService создает новый экземпляр сервиса. publisher может быть nil.
func NewService(
	client CapacityClient,
	refresher Refresher,
	publisher ChangePublisher,
	locker Locker,
	clk *clock.Clock,
	catalog *domain.Catalog,
	logger Logger,
) *Service {
	if catalog == nil {
		catalog = domain.DefaultCatalog
	}
	return &Service{
		client:    client,
		refresher: refresher,
		publisher: publisher,
		locker:    locker,
		clock:     clk,
		catalog:   catalog,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Create создает слот в ячейке сетки
func (s *Service) Create(ctx context.Context, req *models.CreateCapacityRequest) (*models.CommandResponse, error) {
	s.logger.Info("Create: location=%s, day=%d, time_slot=%s, hours=%d-%d",
		req.LocationID, req.DayOfWeek, req.TimeSlot, req.StartHour, req.EndHour)

	// 1. Валидация входных данных
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	timeSlot, err := domain.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Часы слота должны быть интервалом каталога этого периода
	if _, ok := s.catalog.Lookup(timeSlot, domain.HourKey{Start: req.StartHour, End: req.EndHour}); !ok {
		s.logger.Warn("Create: hours %d-%d not in catalog for %s", req.StartHour, req.EndHour, timeSlot)
		return nil, ErrUnknownHourBucket
	}

	// 3. Собираем даты: день начала с часом начала, день окончания с часом окончания
	effective := s.atHour(req.EffectiveDate, req.StartHour, 0, 0)
	expiry := s.atHour(req.ExpiryDate, req.EndHour, 0, 0)
	if err := s.validateDateRange(req.EffectiveDate, req.ExpiryDate); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	body := &capacityapi.CreateCapacityRequest{
		LocationID:    req.LocationID,
		TimeSlot:      string(timeSlot),
		TotalCapacity: req.TotalCapacity,
		DayOfWeek:     req.DayOfWeek,
		EffectiveDate: s.clock.EncodeStored(effective),
		ExpiryDate:    s.clock.EncodeStored(expiry),
		Notes:         req.Notes,
		IsActive:      req.IsActive,
	}

	// 4. Выполняем команду под блокировкой локации
	var created *capacityapi.Capacity
	resp, err := s.run(ctx, "Create", req.LocationID, events.OperationCreated, func() (string, error) {
		c, err := s.client.CreateCapacity(ctx, body)
		if err != nil {
			return "", err
		}
		created = c
		return c.ID, nil
	})
	if err != nil {
		return nil, err
	}

	resp.Capacities = []capacityapi.Capacity{*created}
	return resp, nil
}

// Update меняет вместимость, заметки или активность слота
func (s *Service) Update(ctx context.Context, req *models.UpdateCapacityRequest) (*models.CommandResponse, error) {
	s.logger.Info("Update: capacity=%s, location=%s", req.CapacityID, req.LocationID)

	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if req.TotalCapacity == nil && req.Notes == nil && req.IsActive == nil {
		s.logger.Warn("Update: capacity=%s nothing to update", req.CapacityID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	body := &capacityapi.UpdateCapacityRequest{
		TotalCapacity: req.TotalCapacity,
		Notes:         req.Notes,
		IsActive:      req.IsActive,
	}

	var updated *capacityapi.Capacity
	resp, err := s.run(ctx, "Update", req.LocationID, events.OperationUpdated, func() (string, error) {
		c, err := s.client.UpdateCapacity(ctx, req.CapacityID, body)
		if err != nil {
			return "", err
		}
		updated = c
		return req.CapacityID, nil
	})
	if err != nil {
		return nil, err
	}

	if updated != nil {
		resp.Capacities = []capacityapi.Capacity{*updated}
	}
	return resp, nil
}

// Delete удаляет слот
func (s *Service) Delete(ctx context.Context, req *models.DeleteCapacityRequest) (*models.CommandResponse, error) {
	s.logger.Info("Delete: capacity=%s, location=%s", req.CapacityID, req.LocationID)

	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Delete: validation failed: %v", err)
		return nil, err
	}

	return s.run(ctx, "Delete", req.LocationID, events.OperationDeleted, func() (string, error) {
		return req.CapacityID, s.client.DeleteCapacity(ctx, req.CapacityID)
	})
}

// BulkCreate создает слоты по всем интервалам каталога на диапазоне дней недели одной командой
func (s *Service) BulkCreate(ctx context.Context, req *models.BulkCreateCapacityRequest) (*models.CommandResponse, error) {
	s.logger.Info("BulkCreate: location=%s, days=%d-%d", req.LocationID, req.StartDayOfWeek, req.EndDayOfWeek)

	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("BulkCreate: validation failed: %v", err)
		return nil, err
	}

	if err := s.validateDateRange(req.EffectiveDate, req.ExpiryDate); err != nil {
		s.logger.Warn("BulkCreate: %v", err)
		return nil, err
	}

	// Диапазон покрывает дни целиком: с начала первого дня до конца последнего
	body := &capacityapi.BulkCreateCapacityRequest{
		LocationID:     req.LocationID,
		TotalCapacity:  req.TotalCapacity,
		StartDayOfWeek: req.StartDayOfWeek,
		EndDayOfWeek:   req.EndDayOfWeek,
		EffectiveDate:  s.clock.EncodeStored(s.atHour(req.EffectiveDate, 0, 0, 0)),
		ExpiryDate:     s.clock.EncodeStored(s.atHour(req.ExpiryDate, 23, 59, 59)),
		Notes:          req.Notes,
		IsActive:       req.IsActive,
	}

	var created []capacityapi.Capacity
	resp, err := s.run(ctx, "BulkCreate", req.LocationID, events.OperationBulkCreated, func() (string, error) {
		list, err := s.client.BulkCreateCapacities(ctx, body)
		if err != nil {
			return "", err
		}
		created = list
		return "", nil
	})
	if err != nil {
		return nil, err
	}

	resp.Capacities = created
	s.logger.Info("BulkCreate: location=%s, %d slots created", req.LocationID, len(created))
	return resp, nil
}

// run выполняет команду под блокировкой локации, затем перезагружает кэш и публикует событие
func (s *Service) run(
	ctx context.Context,
	op, locationID string,
	operation events.Operation,
	command func() (capacityID string, err error),
) (*models.CommandResponse, error) {
	unlock := s.locker.Lock(locationID)
	defer unlock()

	capacityID, err := command()
	if err != nil {
		return nil, s.mapClientError(op, locationID, err)
	}

	resp := &models.CommandResponse{}

	// Полная перезагрузка вместо исправления кэша на месте
	fresh, err := s.refresher.Refresh(ctx, locationID)
	if err != nil {
		s.logger.Warn("%s: location=%s refetch after command failed: %v", op, locationID, err)
	} else {
		resp.Refreshed = len(fresh)
	}

	if s.publisher != nil {
		evt := events.CapacityChanged{
			LocationID: locationID,
			Operation:  operation,
			CapacityID: capacityID,
		}
		if err := s.publisher.PublishCapacityChanged(ctx, evt); err != nil {
			s.logger.Warn("%s: location=%s failed to publish change event: %v", op, locationID, err)
		}
	}

	s.logger.Info("%s: location=%s done, capacity=%s", op, locationID, capacityID)
	return resp, nil
}

// mapClientError приводит ошибку backend к ошибкам сервиса, сохраняя сообщение backend
func (s *Service) mapClientError(op, locationID string, err error) error {
	switch {
	case errors.Is(err, capacityapi.ErrNotFound):
		s.logger.Warn("%s: location=%s capacity not found: %v", op, locationID, err)
		return fmt.Errorf("%w: %w", ErrCapacityNotFound, err)
	case errors.Is(err, capacityapi.ErrValidation), errors.Is(err, capacityapi.ErrConflict):
		s.logger.Warn("%s: location=%s rejected by backend: %v", op, locationID, err)
		return fmt.Errorf("%w: %w", ErrRejected, err)
	default:
		s.logger.Error("%s: location=%s backend command failed: %v", op, locationID, err)
		return fmt.Errorf("%w: backend command failed: %v", ErrInternal, err)
	}
}

// atHour возвращает локальную дату t с заданным временем суток
func (s *Service) atHour(t time.Time, hour, min, sec int) time.Time {
	y, m, d := s.clock.Local(t).Date()
	return s.clock.Date(y, m, d, hour, min, sec)
}

func (s *Service) validateDateRange(effective, expiry time.Time) error {
	if s.clock.StartOfDay(expiry).Before(s.clock.StartOfDay(effective)) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			s.clock.Local(effective).Format(domain.DateFormat), s.clock.Local(expiry).Format(domain.DateFormat))
	}
	return nil
}

// validateRequest проверяет теги validate модели запроса
func (s *Service) validateRequest(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
