package repository

import "time"

// InvoiceSequenceRepository reserva consecutivos de factura por día.
// Next debe ejecutarse dentro de la transacción de venta: el consecutivo
// reservado se confirma o descarta junto con la venta.
type InvoiceSequenceRepository interface {
	// Next incrementa y retorna el consecutivo del día (1, 2, 3, ...).
	// Atómico: dos transacciones concurrentes nunca reciben el mismo valor.
	Next(day time.Time) (int64, error)
}
