package request

// CreateAccountRequest is the body for POST /api/v1/accounts
type CreateAccountRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the body for POST /api/v1/sessions
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GhostAccessRequest is the body for POST /api/v1/ghost
type GhostAccessRequest struct {
	TargetUsername string `json:"target_username"`
}

// UpdateSettingRequest is the body for PUT /api/v1/settings/{key}
type UpdateSettingRequest struct {
	Value any `json:"value"`
}

// TransactionRequest is the body for POST /api/v1/transactions
type TransactionRequest struct {
	Type       string  `json:"type"`
	BaseAmount float64 `json:"base_amount"`
	EntityID   string  `json:"entity_id"`
}
