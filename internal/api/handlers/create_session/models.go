package create_session

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	LocationID string  `json:"locationId"`
	Anchor     *string `json:"anchor,omitempty"` // "2025-10-15"
}
