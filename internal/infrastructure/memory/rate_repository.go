package memory

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*RateRepo)(nil)

// RateRepo tipos de cambio en memoria.
type RateRepo struct{ s *Store }

func (r *RateRepo) List(ctx context.Context) ([]*entity.ExchangeRate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ExchangeRate
	for _, code := range sortedKeys(r.s.rates) {
		rate := r.s.rates[code]
		out = append(out, &rate)
	}
	return out, nil
}

func (r *RateRepo) Upsert(ctx context.Context, rate *entity.ExchangeRate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rates[rate.Currency] = *rate
	return nil
}
