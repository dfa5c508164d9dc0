package dto

// DemandRow fila del reporte de demanda por (cliente, producto).
type DemandRow struct {
	CustomerID        string  `json:"customer_id"`
	CustomerCode      string  `json:"customer_code"`
	CustomerName      string  `json:"customer_name"`
	ProductID         string  `json:"product_id"`
	ProductCode       string  `json:"product_code"`
	ProductName       string  `json:"product_name"`
	OrderedTimes      int64   `json:"ordered_times"`
	TotalPieces       int64   `json:"total_pieces"`
	AvgPiecesPerOrder float64 `json:"avg_pieces_per_order"`
	LastOrderDate     string  `json:"last_order_date"`
}

// DemandReportResponse página del reporte.
type DemandReportResponse struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Items []DemandRow  `json:"items"`
	Page  PageResponse `json:"page"`
}
