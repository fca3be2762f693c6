package auth

type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	LedgerAddress string `json:"ledger_address" validate:"required"`
	Role          string `json:"role" validate:"omitempty,oneof=guest host"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
