package submit_booking

import (
	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// toDonationRequest переводит заявку в тело запроса backend
func toDonationRequest(p domain.BookingPayload) *capacityapi.DonationRequest {
	return &capacityapi.DonationRequest{
		PreferredDate:     p.PreferredDate,
		PreferredTimeSlot: string(p.PreferredTimeSlot),
		LocationID:        p.LocationID,
		BloodGroupID:      p.BloodGroupID,
		ComponentTypeID:   p.ComponentTypeID,
		Notes:             p.Notes,
		IsUrgent:          p.IsUrgent,
	}
}
