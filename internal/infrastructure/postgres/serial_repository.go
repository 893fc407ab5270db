package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

var _ repository.SerialRepository = (*SerialRepo)(nil)

// SerialRepo implementación del puerto SerialRepository sobre PostgreSQL.
type SerialRepo struct {
	q Querier
}

func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

// ListByProduct carga las unidades serializadas confirmadas de un producto.
func (r *SerialRepo) ListByProduct(ctx context.Context, productID string) ([]entity.SerialUnit, error) {
	query := `
		SELECT id, serial_number, purchase_date, warranty_start_date, warranty_months, warranty_end_date, status
		FROM product_serials WHERE product_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list serials: %w", err)
	}
	defer rows.Close()

	var out []entity.SerialUnit
	for rows.Next() {
		var s entity.SerialUnit
		var id string
		if err := rows.Scan(&id, &s.SerialNumber, &s.PurchaseDate, &s.WarrantyStartDate,
			&s.WarrantyMonths, &s.WarrantyEndDate, &s.Status); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		s.ID = entity.NewPersistedID(id)
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceForProduct reemplaza la lista completa de unidades del producto.
// Conserva los ids ya persistidos y asigna UUID a las altas de sesión.
func (r *SerialRepo) ReplaceForProduct(ctx context.Context, productID string, serials []entity.SerialUnit) ([]entity.SerialUnit, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_serials WHERE product_id = $1`, productID); err != nil {
		return nil, fmt.Errorf("clear serials: %w", err)
	}

	query := `
		INSERT INTO product_serials (id, product_id, position, serial_number, purchase_date,
			warranty_start_date, warranty_months, warranty_end_date, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	out := make([]entity.SerialUnit, len(serials))
	for i, s := range serials {
		id, ok := s.ID.Persisted()
		if !ok {
			id = uuid.New().String()
			s.ID = entity.NewPersistedID(id)
		}
		if _, err := r.q.Exec(ctx, query,
			id, productID, i, s.SerialNumber, s.PurchaseDate,
			s.WarrantyStartDate, s.WarrantyMonths, s.WarrantyEndDate, s.Status, now,
		); err != nil {
			return nil, fmt.Errorf("insert serial %s: %w", s.SerialNumber, err)
		}
		out[i] = s
	}
	return out, nil
}
