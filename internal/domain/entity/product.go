package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (conjunto cerrado, ampliable aquí).
const (
	CategoryPhones = "Phones"
	CategoryPCs    = "PCs"
)

// ValidCategory indica si la categoría pertenece al conjunto permitido.
func ValidCategory(c string) bool {
	return c == CategoryPhones || c == CategoryPCs
}

// Umbral de stock bajo para el tablero de inventario.
const LowStockThreshold = 10

// Estados de stock derivados (solo presentación).
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"
)

// Product representa un producto del catálogo.
// Price es decimal de punto fijo (NUMERIC en DB); Stock nunca es negativo.
// El stock solo lo muta el catálogo (alta/edición) y el motor de ventas (descuento al confirmar).
type Product struct {
	ID        int64
	Name      string
	Category  string
	Price     decimal.Decimal
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockStatus clasifica el stock actual para las vistas de inventario.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock == 0:
		return StockStatusOut
	case p.Stock <= LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
