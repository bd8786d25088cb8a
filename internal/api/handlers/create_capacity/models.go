package create_capacity

// CreateCapacityRequest HTTP request model
type CreateCapacityRequest struct {
	LocationID    string `json:"locationId"`
	DayOfWeek     int    `json:"dayOfWeek"` // 0 - воскресенье
	TimeSlot      string `json:"timeSlot"`  // Morning | Afternoon | Evening
	StartHour     int    `json:"startHour"`
	EndHour       int    `json:"endHour"`
	EffectiveDate string `json:"effectiveDate"` // "2025-10-15"
	ExpiryDate    string `json:"expiryDate"`    // "2025-12-31"
	TotalCapacity int    `json:"totalCapacity"`
	Notes         string `json:"notes,omitempty"`
	IsActive      *bool  `json:"isActive,omitempty"` // по умолчанию true
}
