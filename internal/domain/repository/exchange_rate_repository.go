package repository

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

// ExchangeRateRepository tipos de cambio informativos (último valor por moneda).
type ExchangeRateRepository interface {
	List(ctx context.Context) ([]*entity.ExchangeRate, error)
	Upsert(ctx context.Context, rate *entity.ExchangeRate) error
}
