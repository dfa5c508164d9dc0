package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Code    string `json:"code" validate:"required,min=1,max=50"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// UpdateCustomerRequest campos opcionales; solo se modifican los presentes.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
