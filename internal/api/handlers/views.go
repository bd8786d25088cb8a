package handlers

import (
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// GridResponse недельная сетка локации
type GridResponse struct {
	Mode           string            `json:"mode"`
	LocationID     string            `json:"locationId"`
	CatalogVersion string            `json:"catalogVersion"`
	WeekStart      string            `json:"weekStart"` // YYYY-MM-DD, воскресенье
	WeekEnd        string            `json:"weekEnd"`   // YYYY-MM-DD, суббота
	Days           []DayResponse     `json:"days"`
	Anomalies      []AnomalyResponse `json:"anomalies"`
}

// DayResponse колонка сетки
type DayResponse struct {
	DayOfWeek int                `json:"dayOfWeek"`
	Date      string             `json:"date"`
	Label     string             `json:"label"`
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// TimeSlotResponse период дня
type TimeSlotResponse struct {
	TimeSlot string         `json:"timeSlot"`
	Cells    []CellResponse `json:"cells"`
}

// CellResponse ячейка сетки
type CellResponse struct {
	HourBucket string        `json:"hourBucket"`
	StartHour  int           `json:"startHour"`
	EndHour    int           `json:"endHour"`
	StartsAt   string        `json:"startsAt"` // RFC3339 со смещением локации
	Selectable bool          `json:"selectable"`
	Reason     string        `json:"reason,omitempty"`
	CanAddSlot bool          `json:"canAddSlot,omitempty"`
	Slot       *SlotResponse `json:"slot,omitempty"`
}

// SlotResponse запись вместимости в ячейке
type SlotResponse struct {
	ID            string `json:"id"`
	DayOfWeek     int    `json:"dayOfWeek"`
	TimeSlot      string `json:"timeSlot"`
	TotalCapacity int    `json:"totalCapacity"`
	IsActive      bool   `json:"isActive"`
	Notes         string `json:"notes,omitempty"`
	EffectiveDate string `json:"effectiveDate"`
	ExpiryDate    string `json:"expiryDate"`
}

// AnomalyResponse проблема в данных вместимости
type AnomalyResponse struct {
	Kind   string `json:"kind"`
	SlotID string `json:"slotId,omitempty"`
	Detail string `json:"detail"`
}

// SessionResponse сессия бронирования
type SessionResponse struct {
	ID         string             `json:"id"`
	LocationID string             `json:"locationId"`
	State      string             `json:"state"`
	WeekStart  string             `json:"weekStart"`
	Selection  *SelectionResponse `json:"selection,omitempty"`
	Details    DetailsResponse    `json:"details"`
	LastError  *string            `json:"lastError,omitempty"`
	BookingRef *string            `json:"bookingRef,omitempty"`
	CreatedAt  string             `json:"createdAt"`
	UpdatedAt  string             `json:"updatedAt"`
}

// SelectionResponse выбранная ячейка
type SelectionResponse struct {
	CapacitySlotID string `json:"capacitySlotId"`
	DayOfWeek      int    `json:"dayOfWeek"`
	TimeSlot       string `json:"timeSlot"`
	HourBucket     string `json:"hourBucket"`
	ResolvedDate   string `json:"resolvedDate"` // RFC3339 со смещением локации
}

// DetailsResponse данные донора
type DetailsResponse struct {
	BloodGroupID    *string `json:"bloodGroupId,omitempty"`
	ComponentTypeID *string `json:"componentTypeId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	IsUrgent        bool    `json:"isUrgent"`
}

// CapacityResponse запись вместимости в формате backend
type CapacityResponse struct {
	ID            string `json:"id"`
	LocationID    string `json:"locationId"`
	TimeSlot      string `json:"timeSlot"`
	TotalCapacity int    `json:"totalCapacity"`
	DayOfWeek     int    `json:"dayOfWeek"`
	EffectiveDate string `json:"effectiveDate"`
	ExpiryDate    string `json:"expiryDate"`
	Notes         string `json:"notes"`
	IsActive      bool   `json:"isActive"`
}

// NewGridResponse конвертирует представление сетки в HTTP ответ
func NewGridResponse(view domain.GridView) GridResponse {
	resp := GridResponse{
		Mode:           string(view.Mode),
		LocationID:     view.LocationID,
		CatalogVersion: view.CatalogVersion,
		WeekStart:      view.Week.Start.Format(domain.DateFormat),
		WeekEnd:        view.Week.End().Format(domain.DateFormat),
		Days:           make([]DayResponse, 0, len(view.Days)),
		Anomalies:      make([]AnomalyResponse, 0, len(view.Anomalies)),
	}

	for _, day := range view.Days {
		dayResp := DayResponse{
			DayOfWeek: day.Day.DayOfWeek,
			Date:      day.Day.Date.Format(domain.DateFormat),
			Label:     day.Day.Label,
			TimeSlots: make([]TimeSlotResponse, 0, len(day.TimeSlots)),
		}

		for _, ts := range day.TimeSlots {
			tsResp := TimeSlotResponse{
				TimeSlot: string(ts.TimeSlot),
				Cells:    make([]CellResponse, 0, len(ts.Cells)),
			}
			for _, cell := range ts.Cells {
				tsResp.Cells = append(tsResp.Cells, newCellResponse(cell))
			}
			dayResp.TimeSlots = append(dayResp.TimeSlots, tsResp)
		}

		resp.Days = append(resp.Days, dayResp)
	}

	for _, a := range view.Anomalies {
		resp.Anomalies = append(resp.Anomalies, AnomalyResponse{
			Kind:   string(a.Kind),
			SlotID: a.SlotID,
			Detail: a.Detail,
		})
	}

	return resp
}

func newCellResponse(cell domain.CellView) CellResponse {
	resp := CellResponse{
		HourBucket: cell.Bucket.Label,
		StartHour:  cell.Bucket.StartHour,
		EndHour:    cell.Bucket.EndHour,
		StartsAt:   cell.StartsAt().Format(time.RFC3339),
		Selectable: cell.Selectable,
		Reason:     string(cell.Reason),
		CanAddSlot: cell.CanAddSlot,
	}

	if cell.Slot != nil {
		resp.Slot = &SlotResponse{
			ID:            cell.Slot.ID,
			DayOfWeek:     cell.Slot.DayOfWeek,
			TimeSlot:      string(cell.Slot.TimeSlot),
			TotalCapacity: cell.Slot.TotalCapacity,
			IsActive:      cell.Slot.IsActive,
			Notes:         cell.Slot.Notes,
			EffectiveDate: cell.Slot.EffectiveDate.Format(time.RFC3339),
			ExpiryDate:    cell.Slot.ExpiryDate.Format(time.RFC3339),
		}
	}

	return resp
}

// NewSessionResponse конвертирует сессию в HTTP ответ
func NewSessionResponse(s *domain.BookingSession) SessionResponse {
	resp := SessionResponse{
		ID:         s.ID.String(),
		LocationID: s.LocationID,
		State:      string(s.State),
		WeekStart:  s.WeekAnchor.Format(domain.DateFormat),
		Details: DetailsResponse{
			BloodGroupID:    s.Details.BloodGroupID,
			ComponentTypeID: s.Details.ComponentTypeID,
			Notes:           s.Details.Notes,
			IsUrgent:        s.Details.IsUrgent,
		},
		LastError:  s.LastError,
		BookingRef: s.BookingRef,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}

	if s.Selection != nil {
		resp.Selection = &SelectionResponse{
			CapacitySlotID: s.Selection.CapacitySlotID,
			DayOfWeek:      s.Selection.DayOfWeek,
			TimeSlot:       string(s.Selection.TimeSlot),
			HourBucket:     s.Selection.HourBucket.Label,
			ResolvedDate:   s.Selection.ResolvedDate.Format(time.RFC3339),
		}
	}

	return resp
}

// NewCapacityResponses конвертирует записи backend в HTTP ответ
func NewCapacityResponses(list []capacityapi.Capacity) []CapacityResponse {
	resp := make([]CapacityResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, CapacityResponse{
			ID:            c.ID,
			LocationID:    c.LocationID,
			TimeSlot:      c.TimeSlot,
			TotalCapacity: c.TotalCapacity,
			DayOfWeek:     c.DayOfWeek,
			EffectiveDate: c.EffectiveDate,
			ExpiryDate:    c.ExpiryDate,
			Notes:         c.Notes,
			IsActive:      c.IsActive,
		})
	}
	return resp
}
