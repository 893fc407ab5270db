package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

var _ repository.CategoryPolicyRepository = (*CategoryPolicyRepo)(nil)

// CategoryPolicyRepo lee la tabla de políticas por categoría. Las filas
// sobreescriben la semilla por defecto; si la tabla está vacía el caso de uso
// cae a entity.DefaultCategoryPolicies.
type CategoryPolicyRepo struct {
	q Querier
}

func NewCategoryPolicyRepository(q Querier) *CategoryPolicyRepo {
	return &CategoryPolicyRepo{q: q}
}

func (r *CategoryPolicyRepo) LoadTable() (entity.CategoryPolicyTable, error) {
	query := `
		SELECT category, requires_expiry, batch_label, fallback_prefix, default_warranty_months
		FROM category_policies`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("load category policies: %w", err)
	}
	defer rows.Close()

	table := entity.CategoryPolicyTable{}
	for rows.Next() {
		var p entity.CategoryPolicy
		if err := rows.Scan(&p.Category, &p.RequiresExpiry, &p.BatchLabel,
			&p.FallbackPrefix, &p.DefaultWarrantyMonths); err != nil {
			return nil, fmt.Errorf("scan category policy: %w", err)
		}
		table[p.Category] = p
	}
	return table, rows.Err()
}
