package entity

import "time"

// Valores por defecto de catálogo.
const (
	DefaultCurrency = "TRY"
	DefaultUnit     = "adet"
)

// Product representa un producto del catálogo.
// StockQuantity es la cifra cacheada del ledger: debe coincidir con la suma de sus movimientos.
// Price se guarda en unidades menores (kuruş/centavos).
type Product struct {
	ID            string
	Code          string // código único
	Name          string
	StockQuantity int64
	MinStockLevel int64 // umbral de reposición
	Unit          string
	Price         int64
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinimum indica si el stock está en o por debajo del umbral de reposición.
func (p *Product) BelowMinimum() bool {
	return p.StockQuantity <= p.MinStockLevel
}
