package lots_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	applots "github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

// ── Dobles en memoria de los puertos de persistencia ─────────────────────────

type fakeProductRepo struct{ products map[string]*entity.Product }

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error)     { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error)     { return nil, nil }
func (f *fakeProductRepo) Delete(string) error                          { return nil }

type fakePolicyRepo struct{}

func (fakePolicyRepo) LoadTable() (entity.CategoryPolicyTable, error) {
	return entity.DefaultCategoryPolicies(), nil
}

// fakeBatchRepo asigna ids secuenciales "db-batch-N" al reemplazar, como haría
// la base de datos real.
type fakeBatchRepo struct {
	rows map[string][]entity.Batch
	seq  int
}

func (f *fakeBatchRepo) ListByProduct(_ context.Context, productID string) ([]entity.Batch, error) {
	return f.rows[productID], nil
}

func (f *fakeBatchRepo) ReplaceForProduct(_ context.Context, productID string, batches []entity.Batch) ([]entity.Batch, error) {
	out := make([]entity.Batch, len(batches))
	for i, b := range batches {
		if !b.ID.IsPersisted() {
			f.seq++
			b.ID = entity.NewPersistedID(fmt.Sprintf("db-batch-%d", f.seq))
		}
		out[i] = b
	}
	f.rows[productID] = out
	return out, nil
}

type fakeSerialRepo struct {
	rows map[string][]entity.SerialUnit
	seq  int
}

func (f *fakeSerialRepo) ListByProduct(_ context.Context, productID string) ([]entity.SerialUnit, error) {
	return f.rows[productID], nil
}

func (f *fakeSerialRepo) ReplaceForProduct(_ context.Context, productID string, units []entity.SerialUnit) ([]entity.SerialUnit, error) {
	out := make([]entity.SerialUnit, len(units))
	for i, u := range units {
		if !u.ID.IsPersisted() {
			f.seq++
			u.ID = entity.NewPersistedID(fmt.Sprintf("db-serial-%d", f.seq))
		}
		out[i] = u
	}
	f.rows[productID] = out
	return out, nil
}

type fakeTxRunner struct {
	batches *fakeBatchRepo
	serials *fakeSerialRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.BatchRepository, repository.SerialRepository) error) error {
	return fn(f.batches, f.serials)
}

func newSessionFixture(t *testing.T) (*applots.SessionStore, *applots.OpenSessionUseCase, *applots.CommitUseCase) {
	t.Helper()
	p := testProduct()
	store := applots.NewSessionStore()
	batchRepo := &fakeBatchRepo{rows: map[string][]entity.Batch{}}
	serialRepo := &fakeSerialRepo{rows: map[string][]entity.SerialUnit{}}
	open := applots.NewOpenSessionUseCase(
		store,
		&fakeProductRepo{products: map[string]*entity.Product{p.ID: &p}},
		fakePolicyRepo{},
		batchRepo,
		serialRepo,
		fixedClock,
	)
	commit := applots.NewCommitUseCase(&fakeTxRunner{batches: batchRepo, serials: serialRepo})
	return store, open, commit
}

// TestOpenSession_ProductoInexistente abrir sesión sobre un producto que no
// existe devuelve ErrNotFound.
func TestOpenSession_ProductoInexistente(t *testing.T) {
	_, open, _ := newSessionFixture(t)
	_, err := open.Open(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCommit_Rehidrata el ciclo completo: abrir sesión, agregar lote y serial,
// commit. Las filas vuelven con ids de base de datos y a partir de ahí el
// guard bloquea cantidad del lote y borrado del serial.
func TestCommit_Rehidrata(t *testing.T) {
	store, open, commit := newSessionFixture(t)

	s, err := open.Open(context.Background(), "prod-1")
	require.NoError(t, err)

	_, err = s.Batches.Add(applots.BatchDraft{BatchNumber: "B-1", Quantity: qty(10), ExpiryDate: datePtr(2024, 6, 1)})
	require.NoError(t, err)
	_, err = s.Serials.Add(applots.SerialDraft{SerialNumber: "SN-1"})
	require.NoError(t, err)

	batches, serials, err := commit.Commit(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Len(t, serials, 1)
	assert.True(t, batches[0].ID.IsPersisted())
	assert.True(t, serials[0].ID.IsPersisted())

	// El registro quedó rehidratado: la cantidad del lote ya no es editable.
	d, quantityLocked, err := s.Batches.Edit(batches[0].ID)
	require.NoError(t, err)
	assert.True(t, quantityLocked)

	d.Quantity = qty(99)
	err = s.Batches.Save(batches[0].ID, d)
	rej, ok := applots.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, applots.RejectPersistedImmutable, rej.Kind)

	// Y el serial persistido ya no puede borrarse.
	err = s.Serials.Remove(serials[0].ID)
	_, ok = applots.AsRejection(err)
	assert.True(t, ok)

	// Cerrar la sesión descarta el estado; no hay rollback parcial que hacer.
	store.Close(s.ID)
	_, err = store.Get(s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
