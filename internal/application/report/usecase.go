// Package report contiene el reporte de demanda por cliente y producto y su exportación.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/ports"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/demand"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

// DateLayout formato de from/to.
const DateLayout = "2006-01-02"

const cachePrefix = "demand:"

// DemandSchema orden y filtros admitidos por el reporte (paginación vía listquery).
var DemandSchema = listquery.Schema{
	SortFields:  demand.SortFields,
	Filters:     map[string]listquery.Kind{"customer_id": listquery.KindSelect},
	DefaultSort: demand.SortTotalPieces,
	DefaultDir:  listquery.Desc,
}

// DemandParams rango obligatorio más página/orden/filtro de cliente.
type DemandParams struct {
	From  string
	To    string
	Query listquery.Query
}

// Exporter genera la planilla del reporte.
type Exporter interface {
	DemandXLSX(ctx context.Context, from, to string, rows []dto.DemandRow) ([]byte, error)
}

// UseCase reporte de demanda.
type UseCase struct {
	repo      repository.DemandRepository
	customers repository.CustomerRepository
	exporter  Exporter
	cache     ports.Cache
	ttl       time.Duration
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. cache puede ser ports.NopCache{}.
func NewUseCase(
	repo repository.DemandRepository,
	customers repository.CustomerRepository,
	exporter Exporter,
	cache ports.Cache,
	ttl time.Duration,
	log *logger.Logger,
) *UseCase {
	return &UseCase{repo: repo, customers: customers, exporter: exporter, cache: cache, ttl: ttl, log: log}
}

// Demand devuelve una página del reporte agrupado por (cliente, producto).
func (uc *UseCase) Demand(ctx context.Context, p DemandParams) (*dto.DemandReportResponse, error) {
	f, err := filterFor(p)
	if err != nil {
		return nil, err
	}
	key := cacheKey(p)
	var cached dto.DemandReportResponse
	if ok, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché")
	} else if ok {
		return &cached, nil
	}

	stats, total, err := uc.repo.Report(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.DemandReportResponse{
		From:  p.From,
		To:    p.To,
		Items: toRows(stats),
		Page:  dto.NewPage(p.Query, total),
	}
	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché")
	}
	return out, nil
}

// Export genera el XLSX con todos los grupos del rango (sin paginar), en el orden pedido.
func (uc *UseCase) Export(ctx context.Context, p DemandParams) ([]byte, string, error) {
	f, err := filterFor(p)
	if err != nil {
		return nil, "", err
	}
	f.Limit, f.Offset = 0, 0
	stats, _, err := uc.repo.Report(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.DemandXLSX(ctx, p.From, p.To, toRows(stats))
	if err != nil {
		return nil, "", err
	}
	return data, "demanda_" + p.From + "_" + p.To + ".xlsx", nil
}

// CustomerDemand demanda de un cliente agrupada en memoria, ordenada por piezas desc.
func (uc *UseCase) CustomerDemand(ctx context.Context, customerID, from, to string) ([]dto.DemandRow, error) {
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	lines, err := uc.repo.Lines(ctx, customerID, start, end)
	if err != nil {
		return nil, err
	}
	stats := demand.Group(lines)
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalPieces > stats[j].TotalPieces })
	return toRows(stats), nil
}

// Invalidate descarta los reportes cacheados (tras escribir pedidos, clientes o productos).
func (uc *UseCase) Invalidate(ctx context.Context) {
	if err := uc.cache.DeletePrefix(ctx, cachePrefix); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de demanda")
	}
}

func filterFor(p DemandParams) (repository.DemandFilter, error) {
	start, end, err := parseRange(p.From, p.To)
	if err != nil {
		return repository.DemandFilter{}, err
	}
	sortField := p.Query.Sort
	if sortField == "" {
		sortField = DemandSchema.DefaultSort
	}
	valid := false
	for _, s := range demand.SortFields {
		if s == sortField {
			valid = true
			break
		}
	}
	if !valid {
		return repository.DemandFilter{}, domain.NewValidationError("sort", "unsupported sort field")
	}
	dir := strings.ToLower(p.Query.Direction)
	if dir != listquery.Asc {
		dir = listquery.Desc
	}
	f := repository.DemandFilter{
		From:      start,
		To:        end,
		Sort:      sortField,
		Direction: dir,
		Limit:     p.Query.PageSize,
		Offset:    p.Query.Offset(),
	}
	if cf, ok := p.Query.Filter("customer_id"); ok && len(cf.Values) > 0 {
		f.CustomerID = cf.Values[0]
	}
	return f, nil
}

// parseRange exige from y to (YYYY-MM-DD) con from <= to.
func parseRange(from, to string) (time.Time, time.Time, error) {
	verr := &domain.ValidationError{}
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		verr.Add("from", "is required as YYYY-MM-DD")
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		verr.Add("to", "is required as YYYY-MM-DD")
	}
	if verr.Empty() && end.Before(start) {
		verr.Add("to", "must not be before from")
	}
	if err := verr.OrNil(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func cacheKey(p DemandParams) string {
	return cachePrefix + p.From + ":" + p.To + ":" + listquery.Encode(p.Query).Encode()
}

func toRows(stats []demand.Stat) []dto.DemandRow {
	rows := make([]dto.DemandRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, dto.DemandRow{
			CustomerID:        s.CustomerID,
			CustomerCode:      s.CustomerCode,
			CustomerName:      s.CustomerName,
			ProductID:         s.ProductID,
			ProductCode:       s.ProductCode,
			ProductName:       s.ProductName,
			OrderedTimes:      s.OrderedTimes,
			TotalPieces:       s.TotalPieces,
			AvgPiecesPerOrder: s.AvgPiecesPerOrder(),
			LastOrderDate:     s.LastOrderDate.Format(DateLayout),
		})
	}
	return rows
}
