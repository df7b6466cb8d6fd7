package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de una venta.
// UnitPrice y ProductName son snapshots al momento de la venta: las facturas
// históricas no cambian aunque el catálogo se edite después.
// TotalPrice = Quantity × UnitPrice, sin redondeo adicional.
type SaleItem struct {
	ID          int64
	SaleID      int64
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
