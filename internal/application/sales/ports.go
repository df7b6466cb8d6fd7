package sales

import (
	"context"

	"github.com/techstore/pos-api/internal/domain/entity"
	"github.com/techstore/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// venta atados a la tx. Si fn retorna error se hace rollback completo:
// descuentos de stock, consecutivo de factura, cabecera y líneas se
// confirman juntos o no se confirma nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.InvoiceSequenceRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación imprimible de una venta.
type InvoicePDFGenerator interface {
	GenerateSalePDF(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error)
}
