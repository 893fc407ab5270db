package lots

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/lotes-api/internal/domain"
	"github.com/tu-usuario/lotes-api/internal/domain/lots"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

// ExpiryReportUseCase arma el reporte PDF de vencimientos de un producto:
// lotes persistidos en orden FEFO con su clasificación de vencimiento.
type ExpiryReportUseCase struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	gen         ExpiryReportGenerator
	now         func() time.Time
}

func NewExpiryReportUseCase(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	gen ExpiryReportGenerator,
) *ExpiryReportUseCase {
	return &ExpiryReportUseCase{
		productRepo: productRepo,
		batchRepo:   batchRepo,
		gen:         gen,
		now:         time.Now,
	}
}

// Generate devuelve los bytes del PDF de vencimientos del producto.
func (uc *ExpiryReportUseCase) Generate(ctx context.Context, productID string) ([]byte, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("cargar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("cargar lotes: %w", err)
	}
	lots.SortFEFO(batches)
	return uc.gen.GenerateExpiryReport(ctx, product, batches, uc.now())
}
