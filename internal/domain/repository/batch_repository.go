package repository

import (
	"context"

	"github.com/tu-usuario/lotes-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para los lotes confirmados
// de un producto. El registro en memoria emite la lista completa; el commit la
// reemplaza de forma transaccional y devuelve las filas con los ids
// autoritativos asignados por la base de datos.
type BatchRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]entity.Batch, error)
	ReplaceForProduct(ctx context.Context, productID string, batches []entity.Batch) ([]entity.Batch, error)
}

// SerialRepository puerto equivalente para unidades seriales confirmadas.
type SerialRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]entity.SerialUnit, error)
	ReplaceForProduct(ctx context.Context, productID string, units []entity.SerialUnit) ([]entity.SerialUnit, error)
}
