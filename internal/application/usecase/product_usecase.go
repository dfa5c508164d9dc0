package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/validation"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
	"github.com/jhoicas/Siparis-api/pkg/money"
)

// ProductListSchema orden y filtros admitidos en el listado de productos.
var ProductListSchema = listquery.Schema{
	SortFields: []string{"code", "name", "stock_quantity", "price", "created_at"},
	Filters: map[string]listquery.Kind{
		"code":     listquery.KindText,
		"unit":     listquery.KindSelect,
		"currency": listquery.KindMulti,
	},
	DefaultSort: "code",
	DefaultDir:  listquery.Asc,
}

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con stock 0. Unidad y moneda toman los valores por defecto si faltan.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if !money.ValidCurrency(currency) {
		return nil, domain.NewValidationError("currency", "unknown currency code")
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.DefaultUnit
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		MinStockLevel: in.MinStockLevel,
		Unit:          unit,
		Price:         in.Price,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los datos de catálogo. No permite modificar el stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Unit != nil && *in.Unit != "" {
		product.Unit = *in.Unit
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Currency != nil {
		c := strings.ToUpper(*in.Currency)
		if !money.ValidCurrency(c) {
			return nil, domain.NewValidationError("currency", "unknown currency code")
		}
		product.Currency = c
	}
	if in.MinStockLevel != nil {
		product.MinStockLevel = *in.MinStockLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación, orden y búsqueda por código o nombre.
func (uc *ProductUseCase) List(ctx context.Context, q listquery.Query) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPage(q, total)}, nil
}

// LowStock productos en o por debajo de su nivel mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context, limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 || limit > listquery.MaxPageSize {
		limit = listquery.MaxPageSize
	}
	list, err := uc.repo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. Falla con ErrConflict si tiene movimientos o pedidos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		BelowMinimum:  p.BelowMinimum(),
		Unit:          p.Unit,
		Price:         p.Price,
		PriceDisplay:  money.String(p.Price),
		Currency:      p.Currency,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
