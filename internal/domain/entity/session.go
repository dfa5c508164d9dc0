package entity

import "time"

// Session sesión de servidor asociada a un token. LastActivityAt la renueva cada petición.
type Session struct {
	ID             string
	UserID         string
	CreatedAt      time.Time
	LastActivityAt time.Time
}
