package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate tipo de cambio de una moneda frente a la moneda base (TRY). Solo informativo.
type ExchangeRate struct {
	Currency  string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
