package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain/demand"
)

// DemandFilter parámetros del reporte de demanda. Sort debe estar en demand.SortFields.
type DemandFilter struct {
	From       time.Time
	To         time.Time
	CustomerID string
	Sort       string
	Direction  string
	Limit      int
	Offset     int
}

// DemandRepository agregación de demanda sobre las líneas de catálogo de los pedidos.
type DemandRepository interface {
	// Report agrupa en la BD y devuelve la página pedida junto con el total de grupos.
	Report(ctx context.Context, f DemandFilter) ([]demand.Stat, int, error)
	// Lines devuelve las líneas de catálogo de un cliente en el rango, sin agrupar.
	Lines(ctx context.Context, customerID string, from, to time.Time) ([]demand.Line, error)
}
