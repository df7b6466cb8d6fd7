package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea del carrito: producto y cantidad solicitada.
type SaleLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
// ServedBy identifica al operador que atiende la venta (texto libre).
type CreateSaleRequest struct {
	ServedBy string            `json:"served_by" validate:"required"`
	Items    []SaleLineRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de la venta con snapshot de precio y nombre,
// más el producto actual del catálogo.
type SaleItemResponse struct {
	ID          int64            `json:"id"`
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TotalPrice  decimal.Decimal  `json:"total_price"`
	Product     *ProductResponse `json:"product,omitempty"`
}

// SaleResponse venta con sus líneas, en el orden del carrito.
type SaleResponse struct {
	ID            int64              `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	ServedBy      string             `json:"served_by"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse ventas más recientes primero.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
