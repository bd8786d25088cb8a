package bulk_create_capacities

// BulkCreateRequest HTTP request model
type BulkCreateRequest struct {
	LocationID     string `json:"locationId"`
	StartDayOfWeek int    `json:"startDayOfWeek"`
	EndDayOfWeek   int    `json:"endDayOfWeek"`
	EffectiveDate  string `json:"effectiveDate"` // "2025-10-15"
	ExpiryDate     string `json:"expiryDate"`    // "2025-12-31"
	TotalCapacity  int    `json:"totalCapacity"`
	Notes          string `json:"notes,omitempty"`
	IsActive       *bool  `json:"isActive,omitempty"` // по умолчанию true
}
