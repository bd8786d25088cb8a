package update_capacity

// UpdateCapacityRequest HTTP request model; обновляются только переданные поля
type UpdateCapacityRequest struct {
	LocationID    string  `json:"locationId"`
	TotalCapacity *int    `json:"totalCapacity,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}
