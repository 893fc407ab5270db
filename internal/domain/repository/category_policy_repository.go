package repository

import "github.com/tu-usuario/lotes-api/internal/domain/entity"

// CategoryPolicyRepository define el puerto de lectura de la tabla de
// políticas por categoría. Solo lectura desde esta subárea: las categorías se
// administran fuera del núcleo de trazabilidad.
type CategoryPolicyRepository interface {
	LoadTable() (entity.CategoryPolicyTable, error)
}
