package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/techstore/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSalesSummary agrega número de ventas, ingresos y unidades vendidas.
// Los ingresos salen de sales.total_amount (que por invariante es la suma de
// sus líneas); las unidades, de sale_items.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM sales WHERE created_at BETWEEN $1 AND $2),
	    (SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at BETWEEN $1 AND $2),
	    (SELECT COALESCE(SUM(si.quantity), 0)
	       FROM sale_items si
	       JOIN sales s ON s.id = si.sale_id
	      WHERE s.created_at BETWEEN $1 AND $2)`
	var result repository.SalesSummaryResult
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&result.SaleCount, &result.TotalRevenue, &result.ItemsSold,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &result, nil
}

// GetTopProducts agrupa unidades e ingresos por producto (snapshot del nombre
// en sale_items, para que productos renombrados reporten como se vendieron).
func (r *ReportRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT si.product_id, si.product_name,
	       SUM(si.quantity)    AS units_sold,
	       SUM(si.total_price) AS revenue
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	WHERE s.created_at BETWEEN $1 AND $2
	GROUP BY si.product_id, si.product_name
	ORDER BY units_sold DESC, revenue DESC
	LIMIT $3`
	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
