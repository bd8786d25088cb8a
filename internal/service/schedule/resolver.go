package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// DecodeSlots переводит записи backend в доменные слоты.
// Запись с нечитаемой датой или неизвестным периодом отбрасывается с аномалией.
func (s *Service) DecodeSlots(records []capacityapi.Capacity) ([]domain.CapacitySlot, []domain.Anomaly) {
	slots := make([]domain.CapacitySlot, 0, len(records))
	anomalies := []domain.Anomaly{}

	for _, r := range records {
		ts, err := domain.ParseTimeSlot(r.TimeSlot)
		if err != nil {
			anomalies = append(anomalies, domain.Anomaly{Kind: domain.AnomalyUnknownTimeSlot, SlotID: r.ID, Detail: err.Error()})
			continue
		}

		effective, err := s.clock.DecodeStored(r.EffectiveDate)
		if err != nil {
			anomalies = append(anomalies, domain.Anomaly{Kind: domain.AnomalyMalformedTimestamp, SlotID: r.ID, Detail: "effectiveDate: " + err.Error()})
			continue
		}

		expiry, err := s.clock.DecodeStored(r.ExpiryDate)
		if err != nil {
			anomalies = append(anomalies, domain.Anomaly{Kind: domain.AnomalyMalformedTimestamp, SlotID: r.ID, Detail: "expiryDate: " + err.Error()})
			continue
		}

		slots = append(slots, domain.CapacitySlot{
			ID:            r.ID,
			LocationID:    r.LocationID,
			DayOfWeek:     r.DayOfWeek,
			TimeSlot:      ts,
			EffectiveDate: effective,
			ExpiryDate:    expiry,
			TotalCapacity: r.TotalCapacity,
			IsActive:      r.IsActive,
			Notes:         r.Notes,
		})
	}

	s.report(anomalies)
	return slots, anomalies
}

// Resolve раскладывает слоты по сетке недели.
// Слоты, чей интервал дат не пересекается с неделей, пропускаются.
// При совпадении координат побеждает последний слот, замена фиксируется как аномалия.
func (s *Service) Resolve(slots []domain.CapacitySlot, week domain.Week) *domain.Grid {
	grid := domain.NewGrid(week)

	for _, slot := range slots {
		if !week.Overlaps(slot.EffectiveDate, slot.ExpiryDate) {
			continue
		}

		if !slot.HasValidDayOfWeek() {
			grid.Anomalies = append(grid.Anomalies, domain.Anomaly{
				Kind:   domain.AnomalyInvalidDayOfWeek,
				SlotID: slot.ID,
				Detail: fmt.Sprintf("dayOfWeek=%d", slot.DayOfWeek),
			})
			continue
		}

		if !slot.HasValidSpan() {
			grid.Anomalies = append(grid.Anomalies, domain.Anomaly{
				Kind:   domain.AnomalyInvalidSpan,
				SlotID: slot.ID,
				Detail: fmt.Sprintf("hours %s", slot.HourKey()),
			})
			continue
		}

		// Слот вне каталога размещается, но ячейки для него в представлении нет
		if _, ok := s.catalog.Lookup(slot.TimeSlot, slot.HourKey()); !ok {
			grid.Anomalies = append(grid.Anomalies, domain.Anomaly{
				Kind:   domain.AnomalyOffCatalog,
				SlotID: slot.ID,
				Detail: fmt.Sprintf("%s %s is not in catalog v%s", slot.TimeSlot, slot.HourKey(), s.catalog.Version()),
			})
		}

		if prev, replaced := grid.Put(slot); replaced {
			grid.Anomalies = append(grid.Anomalies, domain.Anomaly{
				Kind:   domain.AnomalyDuplicate,
				SlotID: slot.ID,
				Detail: fmt.Sprintf("replaces %s at day=%d %s %s", prev.ID, slot.DayOfWeek, slot.TimeSlot, slot.HourKey()),
			})
		}
	}

	s.report(grid.Anomalies)
	return grid
}

// BuildGrid декодирует записи и раскладывает их по неделе; аномалии обоих шагов попадают в сетку
func (s *Service) BuildGrid(records []capacityapi.Capacity, week domain.Week) *domain.Grid {
	slots, decodeAnomalies := s.DecodeSlots(records)
	grid := s.Resolve(slots, week)
	grid.Anomalies = append(decodeAnomalies, grid.Anomalies...)
	return grid
}

func (s *Service) report(anomalies []domain.Anomaly) {
	for _, a := range anomalies {
		s.logger.Warn("Schedule: capacity data anomaly kind=%s slot=%s: %s", a.Kind, a.SlotID, a.Detail)
		s.recorder.RecordAnomaly(string(a.Kind))
	}
}
