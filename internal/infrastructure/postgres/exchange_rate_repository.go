package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo tipos de cambio. rate es NUMERIC y se lee como decimal.Decimal
// gracias al codec registrado en el pool.
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador.
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

func (r *ExchangeRateRepo) List(ctx context.Context) ([]*entity.ExchangeRate, error) {
	rows, err := r.q.Query(ctx, `SELECT currency, rate, updated_at FROM exchange_rates ORDER BY currency`)
	if err != nil {
		return nil, fmt.Errorf("list exchange rates: %w", err)
	}
	defer rows.Close()
	var out []*entity.ExchangeRate
	for rows.Next() {
		var er entity.ExchangeRate
		if err := rows.Scan(&er.Currency, &er.Rate, &er.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		out = append(out, &er)
	}
	return out, rows.Err()
}

func (r *ExchangeRateRepo) Upsert(ctx context.Context, er *entity.ExchangeRate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO exchange_rates (currency, rate, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (currency) DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at`,
		er.Currency, er.Rate, er.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert exchange rate: %w", err)
	}
	return nil
}
