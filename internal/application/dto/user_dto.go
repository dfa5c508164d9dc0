package dto

import "time"

// RegisterRequest alta de usuario (solo admin).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT ligado a una sesión de servidor.
type LoginResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"session_id"`
	User      UserResponse `json:"user"`
}

// SessionResponse estado de la sesión actual.
type SessionResponse struct {
	SessionID        string    `json:"session_id"`
	State            string    `json:"state"` // active | warned | expired
	LastActivityAt   time.Time `json:"last_activity_at"`
	SecondsRemaining int64     `json:"seconds_remaining"`
	WarnAt           time.Time `json:"warn_at,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
}
