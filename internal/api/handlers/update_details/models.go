package update_details

// UpdateDetailsRequest HTTP request model. Данные заменяются целиком.
type UpdateDetailsRequest struct {
	BloodGroupID    *string `json:"bloodGroupId,omitempty"`
	ComponentTypeID *string `json:"componentTypeId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	IsUrgent        bool    `json:"isUrgent"`
}
