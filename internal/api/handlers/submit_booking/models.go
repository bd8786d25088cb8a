package submit_booking

import (
	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
)

// PayloadResponse отправленная заявка на донацию
type PayloadResponse struct {
	PreferredDate     string  `json:"preferredDate"` // UTC ISO8601
	PreferredTimeSlot string  `json:"preferredTimeSlot"`
	LocationID        string  `json:"locationId"`
	BloodGroupID      *string `json:"bloodGroupId,omitempty"`
	ComponentTypeID   *string `json:"componentTypeId,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	IsUrgent          *bool   `json:"isUrgent,omitempty"`
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Session   handlers.SessionResponse `json:"session"`
	Payload   PayloadResponse          `json:"payload"`
	RequestID string                   `json:"requestId"`
	Status    string                   `json:"status,omitempty"`
}
