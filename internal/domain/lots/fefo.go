package lots

import (
	"sort"

	"github.com/tu-usuario/lotes-api/internal/domain/entity"
)

// SortFEFO ordena lotes in-place por prioridad de consumo First-Expiry-First-Out:
// vencimiento ascendente, lotes sin fecha al final (vencimiento "infinito").
// Orden estable: empates conservan el orden de entrada.
func SortFEFO(batches []entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i].ExpiryDate, batches[j].ExpiryDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}
