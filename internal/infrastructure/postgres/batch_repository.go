package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
// Los ids de fila son UUID asignados aquí al confirmar; el registro en memoria
// los recibe como RecordID persistido.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// ListByProduct carga los lotes confirmados de un producto en orden de alta.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Batch, error) {
	query := `
		SELECT id, batch_number, manufacturing_date, expiry_date, quantity, cost_price, mrp, location, status
		FROM product_batches WHERE product_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []entity.Batch
	for rows.Next() {
		var b entity.Batch
		var id string
		if err := rows.Scan(&id, &b.BatchNumber, &b.ManufacturingDate, &b.ExpiryDate,
			&b.Quantity, &b.CostPrice, &b.MRP, &b.Location, &b.Status); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.ID = entity.NewPersistedID(id)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ReplaceForProduct reemplaza la lista completa de lotes del producto: borra
// las filas actuales e inserta la lista emitida por el registro, conservando
// los ids ya persistidos y asignando UUID a las altas de sesión. Devuelve la
// lista con ids autoritativos, en el mismo orden.
func (r *BatchRepo) ReplaceForProduct(ctx context.Context, productID string, batches []entity.Batch) ([]entity.Batch, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_batches WHERE product_id = $1`, productID); err != nil {
		return nil, fmt.Errorf("clear batches: %w", err)
	}

	query := `
		INSERT INTO product_batches (id, product_id, position, batch_number, manufacturing_date, expiry_date,
			quantity, cost_price, mrp, location, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	out := make([]entity.Batch, len(batches))
	for i, b := range batches {
		id, ok := b.ID.Persisted()
		if !ok {
			id = uuid.New().String()
			b.ID = entity.NewPersistedID(id)
		}
		if _, err := r.q.Exec(ctx, query,
			id, productID, i, b.BatchNumber, b.ManufacturingDate, b.ExpiryDate,
			b.Quantity, b.CostPrice, b.MRP, b.Location, b.Status, now,
		); err != nil {
			return nil, fmt.Errorf("insert batch %s: %w", b.BatchNumber, err)
		}
		out[i] = b
	}
	return out, nil
}
