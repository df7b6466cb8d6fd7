package sales

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/techstore/pos-api/internal/application/dto"
	"github.com/techstore/pos-api/internal/domain"
	"github.com/techstore/pos-api/internal/domain/entity"
	"github.com/techstore/pos-api/internal/domain/invoice"
	"github.com/techstore/pos-api/internal/domain/repository"
)

// CreateSaleUseCase confirma una venta: valida el carrito contra el stock
// actual, descuenta inventario, reserva el número de factura y persiste la
// venta con sus líneas en una sola transacción.
type CreateSaleUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, now: time.Now}
}

// Create confirma la venta del carrito recibido.
//
// La validación recorre las líneas en el orden del carrito; la primera línea
// que falla (producto inexistente o stock insuficiente) aborta la operación
// completa sin efectos: no se descuenta stock de ninguna línea, no se crea
// venta y no se consume consecutivo de factura.
//
// El precio unitario de cada línea es el precio vigente del producto al
// momento de confirmar y queda congelado en la línea (snapshot); cambios
// posteriores de precio no alteran facturas históricas.
func (uc *CreateSaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.ServedBy) == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, line := range in.Items {
		if line.ProductID <= 0 || line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := uc.now()
	var sale *entity.Sale
	var items []*entity.SaleItem
	productsByID := make(map[int64]*entity.Product)

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.InvoiceSequenceRepository,
	) error {
		// 1) Validación línea a línea en el orden del carrito.
		// GetForUpdate bloquea la fila del producto y serializa las ventas
		// concurrentes sobre el mismo producto: dos cajas no pueden pasar la
		// verificación de stock con la misma unidad.
		// remaining descuenta lo ya pedido por líneas anteriores del mismo
		// producto dentro de este carrito.
		remaining := make(map[int64]int64)
		for _, line := range in.Items {
			p, ok := productsByID[line.ProductID]
			if !ok {
				var err error
				p, err = productRepo.GetForUpdate(line.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return &domain.ProductNotFoundError{ProductID: line.ProductID}
				}
				productsByID[line.ProductID] = p
				remaining[line.ProductID] = p.Stock
			}
			if remaining[line.ProductID] < line.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   remaining[line.ProductID],
					Requested:   line.Quantity,
				}
			}
			remaining[line.ProductID] -= line.Quantity
		}

		// 2) Precios y total: snapshot del precio vigente por línea.
		totalAmount := decimal.Zero
		items = items[:0]
		for _, line := range in.Items {
			p := productsByID[line.ProductID]
			lineTotal := p.Price.Mul(decimal.NewFromInt(line.Quantity))
			totalAmount = totalAmount.Add(lineTotal)
			items = append(items, &entity.SaleItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				UnitPrice:   p.Price,
				TotalPrice:  lineTotal,
			})
		}

		// 3) Descuento de stock por producto (agregado de sus líneas).
		// El UPDATE condicional (stock >= cantidad) respalda el invariante de
		// stock no negativo aun si el bloqueo de fila no aplicara.
		for id, p := range productsByID {
			qty := p.Stock - remaining[id]
			if qty == 0 {
				continue
			}
			ok, err := productRepo.DecrementStock(id, qty)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   qty,
				}
			}
			p.Stock = remaining[id]
			p.UpdatedAt = now
		}

		// 4) Consecutivo diario de factura, reservado en esta misma
		// transacción: se confirma o se descarta junto con la venta.
		seq, err := seqRepo.Next(invoice.Day(now))
		if err != nil {
			return err
		}

		// 5) Cabecera y líneas, en el orden del carrito.
		sale = &entity.Sale{
			InvoiceNumber: invoice.Format(now, seq),
			TotalAmount:   totalAmount,
			ServedBy:      in.ServedBy,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			item.SaleID = sale.ID
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items, productsByID), nil
}

// toSaleResponse arma la respuesta con las líneas y el producto actual de cada una.
func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, productsByID map[int64]*entity.Product) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		TotalAmount:   sale.TotalAmount,
		ServedBy:      sale.ServedBy,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		itemResp := dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
		if p, ok := productsByID[item.ProductID]; ok && p != nil {
			pr := toProductResponse(p)
			itemResp.Product = &pr
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		StockStatus: p.StockStatus(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
