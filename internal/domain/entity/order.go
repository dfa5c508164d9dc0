package entity

import "time"

// Estados de pedido.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// IsOrderStatus valida contra el conjunto cerrado de estados.
func IsOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order pedido de un cliente. TotalAmount en unidades menores.
type Order struct {
	ID              string
	OrderNumber     string
	OrderDate       time.Time
	CustomerID      string
	CustomerName    string // solo lectura (join)
	Status          string
	Currency        string
	DeliveryAddress string
	TotalAmount     int64
	Lines           []OrderLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderLine es la unión de las dos variantes de línea de pedido: CatalogLine o CustomLine.
// Solo esos dos tipos la implementan.
type OrderLine interface {
	isOrderLine()
}

// CatalogLine línea que referencia un producto del catálogo.
type CatalogLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductCode string // solo lectura (join)
	ProductName string // solo lectura (join)
	Unit        string // solo lectura (join)
	Quantity    int64
	UnitPrice   int64
	Currency    string
}

// CustomLine línea ad-hoc con código, nombre, unidad y precio propios.
type CustomLine struct {
	ID        string
	OrderID   string
	Code      string
	Name      string
	Unit      string
	Quantity  int64
	UnitPrice int64
	Currency  string
}

func (CatalogLine) isOrderLine() {}
func (CustomLine) isOrderLine()  {}

// LineInfo vista plana de una línea, común a ambas variantes.
type LineInfo struct {
	ID        string
	Custom    bool
	ProductID string // vacío en líneas custom
	Code      string
	Name      string
	Unit      string
	Quantity  int64
	UnitPrice int64
	Currency  string
}

// DescribeLine resuelve la vista plana de una línea.
func DescribeLine(l OrderLine) LineInfo {
	switch v := l.(type) {
	case CatalogLine:
		return LineInfo{ID: v.ID, ProductID: v.ProductID, Code: v.ProductCode, Name: v.ProductName,
			Unit: v.Unit, Quantity: v.Quantity, UnitPrice: v.UnitPrice, Currency: v.Currency}
	case *CatalogLine:
		return DescribeLine(*v)
	case CustomLine:
		return LineInfo{ID: v.ID, Custom: true, Code: v.Code, Name: v.Name,
			Unit: v.Unit, Quantity: v.Quantity, UnitPrice: v.UnitPrice, Currency: v.Currency}
	case *CustomLine:
		return DescribeLine(*v)
	}
	return LineInfo{}
}

// FindLine busca una línea del pedido por ID y variante.
func (o *Order) FindLine(id string, custom bool) (OrderLine, bool) {
	for _, l := range o.Lines {
		info := DescribeLine(l)
		if info.ID == id && info.Custom == custom {
			return l, true
		}
	}
	return nil, false
}
