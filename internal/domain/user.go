package domain

import "time"

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email" validate:"required,email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	LedgerAddress string    `json:"ledger_address" validate:"required"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
