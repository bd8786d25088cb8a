package capacityapi

// Capacity запись вместимости в формате backend.
// EffectiveDate и ExpiryDate хранят час начала и конца интервала как wall clock.
type Capacity struct {
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

// CreateCapacityRequest тело POST /capacities
type CreateCapacityRequest struct {
	LocationID    string `json:"locationId"`
	TimeSlot      string `json:"timeSlot"`
	TotalCapacity int    `json:"totalCapacity"`
	DayOfWeek     int    `json:"dayOfWeek"`
	EffectiveDate string `json:"effectiveDate"`
	ExpiryDate    string `json:"expiryDate"`
	Notes         string `json:"notes"`
	IsActive      bool   `json:"isActive"`
}

// UpdateCapacityRequest тело PUT /capacities/{id}; отсутствующие поля не меняются
type UpdateCapacityRequest struct {
	TimeSlot      *string `json:"timeSlot,omitempty"`
	TotalCapacity *int    `json:"totalCapacity,omitempty"`
	DayOfWeek     *int    `json:"dayOfWeek,omitempty"`
	EffectiveDate *string `json:"effectiveDate,omitempty"`
	ExpiryDate    *string `json:"expiryDate,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

// BulkCreateCapacityRequest тело POST /capacities/bulk
type BulkCreateCapacityRequest struct {
	LocationID     string `json:"locationId"`
	TotalCapacity  int    `json:"totalCapacity"`
	StartDayOfWeek int    `json:"startDayOfWeek"`
	EndDayOfWeek   int    `json:"endDayOfWeek"`
	EffectiveDate  string `json:"effectiveDate"`
	ExpiryDate     string `json:"expiryDate"`
	Notes          string `json:"notes"`
	IsActive       bool   `json:"isActive"`
}

// DonationRequest тело POST /donation-requests
type DonationRequest struct {
	PreferredDate     string  `json:"preferredDate"`
	PreferredTimeSlot string  `json:"preferredTimeSlot"`
	LocationID        string  `json:"locationId"`
	BloodGroupID      *string `json:"bloodGroupId,omitempty"`
	ComponentTypeID   *string `json:"componentTypeId,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	IsUrgent          *bool   `json:"isUrgent,omitempty"`
}

// DonationRequestResult созданная заявка на донацию
type DonationRequestResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// errorResponse тело ошибки backend; message бывает строкой или списком строк
type errorResponse struct {
	Message interface{} `json:"message"`
	Error   string      `json:"error"`
}
