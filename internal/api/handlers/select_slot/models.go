package select_slot

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	CapacitySlotID string `json:"capacitySlotId"`
}
