package navigate_session

// NavigateRequest HTTP request model
type NavigateRequest struct {
	Action string  `json:"action"`         // next | prev | current | goto
	Date   *string `json:"date,omitempty"` // "2025-10-15", для goto
}
