package reports

import (
	"context"
	"time"

	"github.com/techstore/pos-api/internal/application/dto"
	"github.com/techstore/pos-api/internal/domain/repository"
)

// dateLayout formato de fechas en los reportes.
const dateLayout = "2006-01-02"

// ReportUseCase reportes de ventas para el tablero del administrador.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// SalesSummary agrega ventas, ingresos y unidades vendidas en el rango.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, from, to time.Time) (*dto.SalesSummaryResponse, error) {
	result, err := uc.reportRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:         from.Format(dateLayout),
		To:           to.Format(dateLayout),
		SaleCount:    result.SaleCount,
		TotalRevenue: result.TotalRevenue,
		ItemsSold:    result.ItemsSold,
	}, nil
}

// TopProducts retorna los productos más vendidos en el rango.
func (uc *ReportUseCase) TopProducts(ctx context.Context, from, to time.Time, limit int) (*dto.TopProductsResponse, error) {
	if limit <= 0 {
		limit = 5
	}
	results, err := uc.reportRepo.GetTopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.TopProductsResponse{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Items: make([]dto.TopProductResponse, 0, len(results)),
	}
	for _, r := range results {
		resp.Items = append(resp.Items, dto.TopProductResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
		})
	}
	return resp, nil
}
