package repository

import "github.com/techstore/pos-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Create y CreateItem se ejecutan dentro de la transacción de venta; las
// lecturas son de solo consulta una vez confirmada la venta.
type SaleRepository interface {
	// Create persiste la cabecera y asigna sale.ID.
	Create(sale *entity.Sale) error
	// CreateItem persiste una línea y asigna item.ID. El orden de inserción
	// es el orden del carrito.
	CreateItem(item *entity.SaleItem) error
	GetByID(id int64) (*entity.Sale, error)
	// List retorna todas las ventas, más recientes primero.
	List() ([]*entity.Sale, error)
	// ListItemsBySaleIDs retorna las líneas de las ventas dadas, ordenadas
	// por venta y por id (orden del carrito).
	ListItemsBySaleIDs(saleIDs []int64) ([]*entity.SaleItem, error)
}
