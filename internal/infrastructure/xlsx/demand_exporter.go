// Package xlsx exporta reportes a planillas Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/report"
)

var _ report.Exporter = (*DemandExporter)(nil)

const demandSheet = "Demanda"

var demandHeadings = []string{
	"Código cliente", "Cliente", "Código producto", "Producto",
	"Pedidos", "Piezas", "Promedio por pedido", "Último pedido",
}

// DemandExporter escribe el reporte de demanda en una hoja con cabecera fija y autofiltro.
type DemandExporter struct{}

// NewDemandExporter construye el exportador.
func NewDemandExporter() *DemandExporter { return &DemandExporter{} }

// DemandXLSX devuelve el archivo .xlsx en memoria.
func (DemandExporter) DemandXLSX(_ context.Context, from, to string, rows []dto.DemandRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", demandSheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(demandSheet, "A1", fmt.Sprintf("Demanda %s a %s", from, to)); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	avgStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return nil, err
	}

	const headerRow = 3
	for i, h := range demandHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(demandSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(demandHeadings))
	if err := f.SetCellStyle(demandSheet, "A1", fmt.Sprintf("%s%d", lastCol, headerRow), bold); err != nil {
		return nil, err
	}

	for i, r := range rows {
		n := headerRow + 1 + i
		values := []any{
			r.CustomerCode, r.CustomerName, r.ProductCode, r.ProductName,
			r.OrderedTimes, r.TotalPieces, r.AvgPiecesPerOrder, r.LastOrderDate,
		}
		start, _ := excelize.CoordinatesToCellName(1, n)
		if err := f.SetSheetRow(demandSheet, start, &values); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(demandSheet, fmt.Sprintf("G%d", n), fmt.Sprintf("G%d", n), avgStyle); err != nil {
			return nil, err
		}
	}

	last := headerRow + len(rows)
	if len(rows) > 0 {
		if err := f.AutoFilter(demandSheet, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, last), nil); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(demandSheet, "A", lastCol, 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
