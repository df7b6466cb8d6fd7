package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult agregados de ventas en un rango de fechas.
type SalesSummaryResult struct {
	SaleCount    int64
	TotalRevenue decimal.Decimal
	ItemsSold    int64
}

// TopProductResult producto con sus unidades vendidas e ingresos en el rango.
type TopProductResult struct {
	ProductID   int64
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes de ventas.
type ReportRepository interface {
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
}
