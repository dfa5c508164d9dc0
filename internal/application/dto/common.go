package dto

import "github.com/jhoicas/Siparis-api/pkg/listquery"

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"size"`
	Total    int `json:"total"`
}

// NewPage arma los metadatos a partir de la query aplicada.
func NewPage(q listquery.Query, total int) PageResponse {
	return PageResponse{Page: q.Page, PageSize: q.PageSize, Total: total}
}

// ErrorResponse cuerpo de error HTTP. Fields solo en VALIDATION_ERROR (campo -> motivo).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
