package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/ports"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/logger"
	"github.com/jhoicas/Siparis-api/pkg/money"
)

const ratesCacheKey = "rates:latest"

// ExchangeRateUseCase tipos de cambio informativos. La lectura pasa por la caché.
type ExchangeRateUseCase struct {
	repo  repository.ExchangeRateRepository
	cache ports.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewExchangeRateUseCase construye el caso de uso. cache puede ser ports.NopCache{}.
func NewExchangeRateUseCase(repo repository.ExchangeRateRepository, cache ports.Cache, ttl time.Duration, log *logger.Logger) *ExchangeRateUseCase {
	return &ExchangeRateUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// List último tipo de cambio por moneda.
func (uc *ExchangeRateUseCase) List(ctx context.Context) ([]dto.ExchangeRateResponse, error) {
	var cached []dto.ExchangeRateResponse
	if ok, err := uc.cache.Get(ctx, ratesCacheKey, &cached); err != nil {
		uc.log.Warn().Err(err).Str("key", ratesCacheKey).Msg("lectura de caché")
	} else if ok {
		return cached, nil
	}
	rates, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExchangeRateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, dto.ExchangeRateResponse{Currency: r.Currency, Rate: r.Rate, UpdatedAt: r.UpdatedAt})
	}
	if err := uc.cache.Set(ctx, ratesCacheKey, out, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", ratesCacheKey).Msg("escritura de caché")
	}
	return out, nil
}

// Upsert guarda el tipo de cambio de una moneda e invalida la caché.
func (uc *ExchangeRateUseCase) Upsert(ctx context.Context, currency string, rate decimal.Decimal) (*dto.ExchangeRateResponse, error) {
	currency = strings.ToUpper(currency)
	verr := &domain.ValidationError{}
	if !money.ValidCurrency(currency) {
		verr.Add("currency", "unknown currency code")
	}
	if !rate.IsPositive() {
		verr.Add("rate", "must be greater than zero")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	r := &entity.ExchangeRate{Currency: currency, Rate: rate, UpdatedAt: time.Now()}
	if err := uc.repo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.cache.DeletePrefix(ctx, "rates:"); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de tipos de cambio")
	}
	return &dto.ExchangeRateResponse{Currency: r.Currency, Rate: r.Rate, UpdatedAt: r.UpdatedAt}, nil
}
