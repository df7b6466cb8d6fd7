package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/techstore/pos-api/internal/domain/repository"
)

var _ repository.InvoiceSequenceRepository = (*InvoiceSequenceRepo)(nil)

// InvoiceSequenceRepo consecutivo diario de facturas sobre PostgreSQL.
// Reemplaza el esquema "count(ventas)+1": el upsert sobre la fila del día es
// atómico, de modo que dos transacciones concurrentes serializan sobre ella y
// nunca reciben el mismo consecutivo.
type InvoiceSequenceRepo struct {
	q Querier
}

// NewInvoiceSequenceRepository construye el adaptador. Pasar la tx de la venta.
func NewInvoiceSequenceRepository(q Querier) *InvoiceSequenceRepo {
	return &InvoiceSequenceRepo{q: q}
}

// Next incrementa y retorna el consecutivo del día.
func (r *InvoiceSequenceRepo) Next(day time.Time) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (day, value)
		VALUES ($1, 1)
		ON CONFLICT (day)
		DO UPDATE SET value = invoice_sequences.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, day).Scan(&value); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return value, nil
}
