package schedule

import (
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// BuildView отрисовывает все ячейки каталога для каждого дня недели.
// В режиме staff пустые ячейки помечаются как доступные для добавления слота.
func (s *Service) BuildView(grid *domain.Grid, mode domain.ViewMode, locationID string, now time.Time) domain.GridView {
	view := domain.GridView{
		Mode:           mode,
		LocationID:     locationID,
		CatalogVersion: s.catalog.Version(),
		Week:           grid.Week,
		Days:           make([]domain.DayView, 0, domain.DaysInWeek),
		Anomalies:      grid.Anomalies,
	}

	for _, day := range grid.Week.Days {
		dayView := domain.DayView{Day: day}

		for _, ts := range s.catalog.TimeSlots() {
			tsView := domain.TimeSlotView{TimeSlot: ts}

			for _, bucket := range s.catalog.HourBuckets(ts) {
				cell := grid.Cell(day.DayOfWeek, ts, bucket)
				selectable, reason := s.Eligibility(cell, now)

				cellView := domain.CellView{
					Cell:       cell,
					Selectable: selectable,
					Reason:     reason,
				}
				if mode == domain.ViewStaff {
					cellView.CanAddSlot = cell.IsEmpty()
				}
				tsView.Cells = append(tsView.Cells, cellView)
			}

			dayView.TimeSlots = append(dayView.TimeSlots, tsView)
		}

		view.Days = append(view.Days, dayView)
	}

	return view
}
