// Package invoice define la numeración de facturas de venta.
//
// El número tiene la forma INV-YYYYMMDD-NNNN, donde NNNN es un consecutivo
// diario de 4 dígitos con ceros a la izquierda. El consecutivo se reserva de
// forma atómica dentro de la misma transacción que inserta la venta
// (repository.InvoiceSequenceRepository), de modo que dos confirmaciones
// concurrentes nunca obtienen el mismo número.
package invoice

import (
	"fmt"
	"time"
)

// Prefix prefijo de todos los números de factura.
const Prefix = "INV"

// Format construye el número de factura para la fecha y el consecutivo dados.
func Format(date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", Prefix, date.Format("20060102"), seq)
}

// Day normaliza un instante al día calendario que actúa como clave de la
// secuencia diaria.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
