package lots

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/lotes-api/internal/domain"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/repository"
)

// Session una sesión de edición de trazabilidad abierta sobre un producto.
// Posee en exclusiva sus dos registros; las listas pendientes se actualizan
// vía onChange con cada mutación aceptada y son lo que el commit persiste.
// Cerrar la sesión sin commit simplemente descarta el estado en memoria.
type Session struct {
	ID        string
	ProductID string
	OpenedAt  time.Time

	Batches *BatchRegister
	Serials *SerialRegister

	pendingBatches []entity.Batch
	pendingSerials []entity.SerialUnit
}

// PendingBatches última lista de lotes emitida por el registro.
func (s *Session) PendingBatches() []entity.Batch { return s.pendingBatches }

// PendingSerials última lista de seriales emitida por el registro.
func (s *Session) PendingSerials() []entity.SerialUnit { return s.pendingSerials }

// SessionStore almacén en memoria de sesiones abiertas, por id. El mutex
// protege solo el mapa: cada sesión pertenece a un único dueño y sus
// operaciones son síncronas dentro de un turno de interacción.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore construye el almacén vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get devuelve la sesión o domain.ErrSessionNotFound.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if s, ok := st.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Close descarta la sesión. Idempotente.
func (st *SessionStore) Close(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// OpenSessionUseCase abre una sesión de edición: carga el producto, resuelve
// la política de su categoría, hidrata los registros con las filas ya
// persistidas y conecta onChange a las listas pendientes de la sesión.
type OpenSessionUseCase struct {
	store       *SessionStore
	productRepo repository.ProductRepository
	policyRepo  repository.CategoryPolicyRepository
	batchRepo   repository.BatchRepository
	serialRepo  repository.SerialRepository
	now         func() time.Time
}

// NewOpenSessionUseCase construye el caso de uso. now puede ser nil.
func NewOpenSessionUseCase(
	store *SessionStore,
	productRepo repository.ProductRepository,
	policyRepo repository.CategoryPolicyRepository,
	batchRepo repository.BatchRepository,
	serialRepo repository.SerialRepository,
	now func() time.Time,
) *OpenSessionUseCase {
	if now == nil {
		now = time.Now
	}
	return &OpenSessionUseCase{
		store:       store,
		productRepo: productRepo,
		policyRepo:  policyRepo,
		batchRepo:   batchRepo,
		serialRepo:  serialRepo,
		now:         now,
	}
}

// Open abre y registra la sesión para el producto dado.
func (uc *OpenSessionUseCase) Open(ctx context.Context, productID string) (*Session, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	table, err := uc.policyRepo.LoadTable()
	if err != nil || len(table) == 0 {
		// Instalación sin filas en category_policies: tabla semilla.
		table = entity.DefaultCategoryPolicies()
	}
	policy := table.Lookup(product.Category)

	batches, err := uc.batchRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	serials, err := uc.serialRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:             uuid.New().String(),
		ProductID:      productID,
		OpenedAt:       uc.now(),
		pendingBatches: batches,
		pendingSerials: serials,
	}
	s.Batches = NewBatchRegister(*product, policy, batches, func(list []entity.Batch) {
		s.pendingBatches = list
	}, uc.now)
	s.Serials = NewSerialRegister(*product, policy, serials, func(list []entity.SerialUnit) {
		s.pendingSerials = list
	}, uc.now)

	uc.store.put(s)
	return s, nil
}
