package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta confirmada. Inmutable una vez creada:
// no existe contrato de actualización ni borrado sobre ventas.
// TotalAmount es exactamente la suma de los TotalPrice de sus líneas.
type Sale struct {
	ID            int64
	InvoiceNumber string // INV-YYYYMMDD-NNNN, único
	TotalAmount   decimal.Decimal
	ServedBy      string // operador que atendió la venta (texto libre)
	CreatedAt     time.Time
}
