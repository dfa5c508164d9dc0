// Package catalog importa productos desde archivos CSV del sistema contable
// (separador ';', exportados en Windows-1254 o UTF-8).
package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Siparis-api/internal/application/inventory"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/pkg/money"
)

// Columnas esperadas: code;name;unit;price;currency;min_stock
const columns = 6

// LineError fila rechazada del archivo (Line en base 1, contando la cabecera).
type LineError struct {
	Line   int
	Reason string
}

func (e LineError) Error() string { return fmt.Sprintf("línea %d: %s", e.Line, e.Reason) }

// Result resumen de una importación.
type Result struct {
	Created int
	Updated int
}

// Decode devuelve un lector UTF-8: si el contenido no es UTF-8 válido se asume Windows-1254.
func Decode(data []byte) io.Reader {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return bytes.NewReader(data)
	}
	return transform.NewReader(bytes.NewReader(data), charmap.Windows1254.NewDecoder())
}

// Parse lee las filas del CSV. Una cabecera que empiece por "code" se ignora.
// Las filas inválidas se devuelven aparte; un código repetido conserva la última fila.
func Parse(r io.Reader) ([]*entity.Product, []LineError, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		products []*entity.Product
		rejected []LineError
		index    = map[string]int{}
		now      = time.Now()
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer csv: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "code") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		p, reason := parseRecord(rec)
		if reason != "" {
			rejected = append(rejected, LineError{Line: line, Reason: reason})
			continue
		}
		p.ID = uuid.New().String()
		p.CreatedAt, p.UpdatedAt = now, now
		if i, ok := index[p.Code]; ok {
			products[i] = p
			continue
		}
		index[p.Code] = len(products)
		products = append(products, p)
	}
	return products, rejected, nil
}

func parseRecord(rec []string) (*entity.Product, string) {
	if len(rec) != columns {
		return nil, fmt.Sprintf("se esperaban %d columnas, hay %d", columns, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	p := &entity.Product{
		Code:     rec[0],
		Name:     rec[1],
		Unit:     rec[2],
		Currency: strings.ToUpper(rec[4]),
	}
	if p.Code == "" || p.Name == "" {
		return nil, "code y name son obligatorios"
	}
	if p.Unit == "" {
		p.Unit = entity.DefaultUnit
	}
	if p.Currency == "" {
		p.Currency = entity.DefaultCurrency
	}
	if !money.ValidCurrency(p.Currency) {
		return nil, fmt.Sprintf("moneda desconocida %q", p.Currency)
	}
	price, err := money.ParseMinor(rec[3])
	if err != nil || price < 0 {
		return nil, fmt.Sprintf("precio inválido %q", rec[3])
	}
	p.Price = price
	if rec[5] != "" {
		n, err := strconv.ParseInt(rec[5], 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Sprintf("min_stock inválido %q", rec[5])
		}
		p.MinStockLevel = n
	}
	return p, ""
}

// ImportUseCase aplica las filas en una sola transacción (upsert por código, sin tocar stock).
type ImportUseCase struct {
	tx inventory.TxRunner
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx inventory.TxRunner) *ImportUseCase {
	return &ImportUseCase{tx: tx}
}

// Import inserta o actualiza todos los productos; ante cualquier error no aplica ninguno.
func (uc *ImportUseCase) Import(ctx context.Context, products []*entity.Product) (Result, error) {
	var res Result
	err := uc.tx.Run(ctx, func(_ repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		res = Result{}
		for _, p := range products {
			created, err := productRepo.UpsertByCode(ctx, p)
			if err != nil {
				return fmt.Errorf("producto %s: %w", p.Code, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	return res, err
}
