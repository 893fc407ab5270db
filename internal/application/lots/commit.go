package lots

import (
	"context"
	"fmt"

	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

// CommitUseCase juega el papel del formulario anfitrión: toma las listas
// emitidas por los registros de la sesión, las persiste de forma transaccional
// (reemplazo completo por producto) y rehidrata los registros con los ids
// autoritativos de la base de datos. Tras el commit, el guard bloquea la
// edición de cantidades y el borrado de seriales de las filas devueltas.
type CommitUseCase struct {
	tx TxRunner
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(tx TxRunner) *CommitUseCase {
	return &CommitUseCase{tx: tx}
}

// Commit persiste ambas listas en una transacción y rehidrata la sesión.
func (uc *CommitUseCase) Commit(ctx context.Context, s *Session) ([]entity.Batch, []entity.SerialUnit, error) {
	var persistedBatches []entity.Batch
	var persistedSerials []entity.SerialUnit

	err := uc.tx.Run(ctx, func(batchRepo repository.BatchRepository, serialRepo repository.SerialRepository) error {
		var err error
		persistedBatches, err = batchRepo.ReplaceForProduct(ctx, s.ProductID, s.PendingBatches())
		if err != nil {
			return fmt.Errorf("persistir lotes: %w", err)
		}
		persistedSerials, err = serialRepo.ReplaceForProduct(ctx, s.ProductID, s.PendingSerials())
		if err != nil {
			return fmt.Errorf("persistir seriales: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.Batches.Replace(persistedBatches)
	s.Serials.Replace(persistedSerials)
	s.pendingBatches = persistedBatches
	s.pendingSerials = persistedSerials
	return persistedBatches, persistedSerials, nil
}
