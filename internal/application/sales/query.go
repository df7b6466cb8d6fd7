package sales

import (
	"context"

	"github.com/techstore/pos-api/internal/application/dto"
	"github.com/techstore/pos-api/internal/domain"
	"github.com/techstore/pos-api/internal/domain/entity"
	"github.com/techstore/pos-api/internal/domain/repository"
)

// SaleQueries lecturas sobre ventas confirmadas: listados, detalle y PDF.
// Solo lectura; la única escritura sobre ventas es CreateSaleUseCase.
type SaleQueries struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	pdfGen      InvoicePDFGenerator
}

// NewSaleQueries construye las consultas de ventas.
func NewSaleQueries(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, pdfGen InvoicePDFGenerator) *SaleQueries {
	return &SaleQueries{saleRepo: saleRepo, productRepo: productRepo, pdfGen: pdfGen}
}

// List retorna todas las ventas (más recientes primero) con sus líneas y el
// producto actual de cada línea.
func (q *SaleQueries) List(ctx context.Context) (*dto.SaleListResponse, error) {
	sales, err := q.saleRepo.List()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	itemsBySale, productsByID, err := q.loadItems(ids)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(sales))}
	for _, s := range sales {
		resp.Items = append(resp.Items, *toSaleResponse(s, itemsBySale[s.ID], productsByID))
	}
	return resp, nil
}

// Get retorna una venta por ID con sus líneas.
func (q *SaleQueries) Get(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := q.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	itemsBySale, productsByID, err := q.loadItems([]int64{sale.ID})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, itemsBySale[sale.ID], productsByID), nil
}

// InvoicePDF genera el PDF imprimible de la factura de una venta.
func (q *SaleQueries) InvoicePDF(ctx context.Context, id int64) ([]byte, error) {
	sale, err := q.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := q.saleRepo.ListItemsBySaleIDs([]int64{sale.ID})
	if err != nil {
		return nil, err
	}
	return q.pdfGen.GenerateSalePDF(ctx, sale, items)
}

// loadItems carga líneas por venta y los productos actuales referenciados.
func (q *SaleQueries) loadItems(saleIDs []int64) (map[int64][]*entity.SaleItem, map[int64]*entity.Product, error) {
	itemsBySale := make(map[int64][]*entity.SaleItem)
	productsByID := make(map[int64]*entity.Product)
	if len(saleIDs) == 0 {
		return itemsBySale, productsByID, nil
	}
	items, err := q.saleRepo.ListItemsBySaleIDs(saleIDs)
	if err != nil {
		return nil, nil, err
	}
	for _, item := range items {
		itemsBySale[item.SaleID] = append(itemsBySale[item.SaleID], item)
		if _, ok := productsByID[item.ProductID]; !ok {
			p, err := q.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, nil, err
			}
			productsByID[item.ProductID] = p
		}
	}
	return itemsBySale, productsByID, nil
}
