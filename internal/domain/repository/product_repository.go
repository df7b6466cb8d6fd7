package repository

import "github.com/techstore/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y DecrementStock deben usarse dentro de la transacción de venta.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar descuentos de stock concurrentes. Retorna nil si no existe.
	GetForUpdate(id int64) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock descuenta cantidad solo si stock >= quantity.
	// Retorna false si la condición no se cumple (sin modificar la fila).
	DecrementStock(id, quantity int64) (bool, error)
	// Delete retorna domain.ErrConflict si el producto está referenciado por
	// ventas históricas y domain.ErrNotFound si no existe.
	Delete(id int64) error
}
