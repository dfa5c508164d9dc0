package entity

import "time"

// Customer representa un cliente.
type Customer struct {
	ID        string
	Code      string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
