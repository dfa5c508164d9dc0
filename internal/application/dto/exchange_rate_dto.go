package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateResponse tipo de cambio informativo frente a TRY.
type ExchangeRateResponse struct {
	Currency  string          `json:"currency"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpsertExchangeRateRequest body para PUT /api/exchange-rates/:currency.
type UpsertExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}
