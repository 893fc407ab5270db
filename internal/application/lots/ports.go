package lots

import (
	"context"
	"time"

	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una transacción.
// Implementado por infraestructura (postgres.TxRunner).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		serialRepo repository.SerialRepository,
	) error) error
}

// ExpiryReportGenerator genera la representación PDF del reporte de
// vencimientos de un producto. Implementado por infraestructura (pdf).
type ExpiryReportGenerator interface {
	GenerateExpiryReport(ctx context.Context, product *entity.Product, batches []entity.Batch, now time.Time) ([]byte, error)
}
