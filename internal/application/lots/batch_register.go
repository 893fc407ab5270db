package lots

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/lotes-api/internal/domain"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/lots"
)

// BatchChangeFunc recibe la lista completa y actualizada tras cada mutación
// aceptada. La lista es una copia: el receptor puede quedársela sin alias
// sobre el estado interno del registro.
type BatchChangeFunc func(batches []entity.Batch)

// BatchRegister posee la lista de lotes de UN producto durante una sesión de
// edición: altas con defaults pegajosos, edición con bloqueo de cantidad en
// registros persistidos, borrado, orden FEFO y estadísticas agregadas.
// Propiedad exclusiva de la sesión que lo construye; sin concurrencia interna.
type BatchRegister struct {
	product  entity.Product
	policy   entity.CategoryPolicy
	guard    MutabilityGuard
	ids      entity.SessionIDSource
	now      func() time.Time
	onChange BatchChangeFunc

	list  []entity.Batch
	draft BatchDraft
}

// NewBatchRegister construye el registro con la lista inicial (lotes ya
// persistidos del producto) y el contexto de solo lectura para defaults.
// now puede ser nil (usa time.Now); se inyecta para tests deterministas.
func NewBatchRegister(product entity.Product, policy entity.CategoryPolicy, initial []entity.Batch, onChange BatchChangeFunc, now func() time.Time) *BatchRegister {
	if now == nil {
		now = time.Now
	}
	r := &BatchRegister{
		product:  product,
		policy:   policy,
		now:      now,
		onChange: onChange,
		list:     cloneBatches(initial),
	}
	// Borrador inicial sembrado desde el producto: costo y MRP de referencia.
	r.draft = BatchDraft{CostPrice: product.CostPrice, MRP: product.Price}
	return r
}

// Draft devuelve el borrador actual del formulario de entrada.
func (r *BatchRegister) Draft() BatchDraft { return r.draft }

// List devuelve una copia de la lista actual en orden de inserción.
func (r *BatchRegister) List() []entity.Batch { return cloneBatches(r.list) }

// Policy devuelve la política de categoría inyectada (etiquetas de UI).
func (r *BatchRegister) Policy() entity.CategoryPolicy { return r.policy }

// SuggestBatchCode arma un código {prefijo}-B{AAMMDD}{seq} a partir del primer
// token del SKU (o el prefijo de la categoría) y el conteo actual de lotes.
// Es una sugerencia, no una garantía: la secuencia sale del conteo, no de un
// contador persistido, así que la unicidad se valida igual en el alta.
func SuggestBatchCode(existingCount int, sku, fallbackPrefix string, now time.Time) string {
	prefix := skuPrefix(sku, fallbackPrefix)
	return fmt.Sprintf("%s-B%s%03d", prefix, now.Format("060102"), existingCount+1)
}

// SuggestCode sugerencia de código para el siguiente lote de este registro.
func (r *BatchRegister) SuggestCode() string {
	return SuggestBatchCode(len(r.list), r.product.SKU, r.policy.FallbackPrefix, r.now())
}

func skuPrefix(sku, fallback string) string {
	tokens := strings.FieldsFunc(sku, func(c rune) bool {
		return c == '-' || c == '_' || c == ' '
	})
	if len(tokens) > 0 && tokens[0] != "" {
		return strings.ToUpper(tokens[0])
	}
	return fallback
}

// Add valida el borrador y, si lo acepta, normaliza el número de lote a
// mayúsculas, asigna id de sesión, status "active", agrega a la lista
// (copy-on-write), emite onChange y deja los descriptivos como defaults
// pegajosos del siguiente borrador. Cualquier rechazo deja el registro intacto.
func (r *BatchRegister) Add(d BatchDraft) (entity.Batch, error) {
	if err := r.validate(d, entity.RecordID{}); err != nil {
		return entity.Batch{}, err
	}
	b := entity.Batch{
		ID:                r.ids.Next(r.now()),
		BatchNumber:       normalizeCode(d.BatchNumber),
		ManufacturingDate: d.ManufacturingDate,
		ExpiryDate:        d.ExpiryDate,
		Quantity:          d.Quantity,
		CostPrice:         d.CostPrice,
		MRP:               d.MRP,
		Location:          d.Location,
		Status:            entity.BatchStatusActive,
	}
	next := cloneBatches(r.list)
	r.list = append(next, b)
	r.draft = d.carryOver()
	r.emit()
	return b, nil
}

// Edit carga un lote existente en el borrador para modificarlo. Devuelve el
// borrador y si la cantidad está bloqueada (lote persistido).
func (r *BatchRegister) Edit(id entity.RecordID) (BatchDraft, bool, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return BatchDraft{}, false, domain.ErrNotFound
	}
	b := r.list[idx]
	r.draft = BatchDraft{
		BatchNumber:       b.BatchNumber,
		ManufacturingDate: b.ManufacturingDate,
		ExpiryDate:        b.ExpiryDate,
		Quantity:          b.Quantity,
		CostPrice:         b.CostPrice,
		MRP:               b.MRP,
		Location:          b.Location,
	}
	return r.draft, !r.guard.CanEditQuantity(id), nil
}

// Save re-valida como el alta (el duplicado excluye al propio lote) y
// reemplaza el registro en su posición. Si el lote es persistido, un cambio de
// cantidad se rechaza con PERSISTED_IMMUTABLE; status e id se preservan.
func (r *BatchRegister) Save(id entity.RecordID, d BatchDraft) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	if err := r.validate(d, id); err != nil {
		return err
	}
	prev := r.list[idx]
	if !r.guard.CanEditQuantity(id) && !d.Quantity.Equal(prev.Quantity) {
		return Reject(RejectPersistedImmutable, "quantity",
			"la cantidad de un lote ya persistido no puede modificarse en esta sesión")
	}
	next := cloneBatches(r.list)
	next[idx] = entity.Batch{
		ID:                prev.ID,
		BatchNumber:       normalizeCode(d.BatchNumber),
		ManufacturingDate: d.ManufacturingDate,
		ExpiryDate:        d.ExpiryDate,
		Quantity:          d.Quantity,
		CostPrice:         d.CostPrice,
		MRP:               d.MRP,
		Location:          d.Location,
		Status:            prev.Status,
	}
	r.list = next
	r.emit()
	return nil
}

// Remove elimina el lote por id, sin importar su origen: un lote persistido
// borrado se reconcilia por cantidad en los movimientos de stock.
func (r *BatchRegister) Remove(id entity.RecordID) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	next := make([]entity.Batch, 0, len(r.list)-1)
	next = append(next, r.list[:idx]...)
	next = append(next, r.list[idx+1:]...)
	r.list = next
	r.emit()
	return nil
}

// Replace rehidrata la lista tras un commit (ids autoritativos de la base de
// datos). No emite onChange: no es una mutación de la sesión.
func (r *BatchRegister) Replace(list []entity.Batch) {
	r.list = cloneBatches(list)
}

// BatchStats agregados del registro, recomputados de la lista en cada llamada.
type BatchStats struct {
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
	ExpiredCount  int
	NextToExpire  *entity.Batch
}

// Stats cantidad y valoración totales, lotes vencidos y el próximo a vencer
// (menor vencimiento no vencido; empates por orden de inserción).
func (r *BatchRegister) Stats() BatchStats {
	now := r.now()
	st := BatchStats{TotalQuantity: decimal.Zero, TotalValue: decimal.Zero}
	for i := range r.list {
		b := r.list[i]
		st.TotalQuantity = st.TotalQuantity.Add(b.Quantity)
		st.TotalValue = st.TotalValue.Add(b.Value())

		cls := lots.ClassifyExpiry(b.ExpiryDate, now)
		if cls.Tier == lots.TierExpired {
			st.ExpiredCount++
			continue
		}
		if b.ExpiryDate == nil {
			continue
		}
		if st.NextToExpire == nil || b.ExpiryDate.Before(*st.NextToExpire.ExpiryDate) {
			cp := b
			st.NextToExpire = &cp
		}
	}
	return st
}

// FEFOOrder lista ordenada por prioridad de consumo First-Expiry-First-Out:
// vencimiento ascendente, lotes sin fecha al final (vencimiento "infinito").
// Orden estable: empates conservan el orden de inserción.
func (r *BatchRegister) FEFOOrder() []entity.Batch {
	out := cloneBatches(r.list)
	lots.SortFEFO(out)
	return out
}

func (r *BatchRegister) validate(d BatchDraft, self entity.RecordID) error {
	code := strings.TrimSpace(d.BatchNumber)
	if code == "" {
		return Reject(RejectEmptyIdentifier, "batchNumber",
			fmt.Sprintf("%s es requerido", r.policy.BatchLabel))
	}
	if r.policy.RequiresExpiry && d.ExpiryDate == nil {
		return Reject(RejectMissingExpiry, "expiryDate",
			fmt.Sprintf("la categoría %s exige fecha de vencimiento", r.policy.Category))
	}
	if !d.Quantity.GreaterThan(decimal.Zero) {
		return Reject(RejectNonPositiveQuantity, "quantity",
			"la cantidad debe ser mayor que cero")
	}
	if d.ManufacturingDate != nil && d.ExpiryDate != nil && !d.ExpiryDate.After(*d.ManufacturingDate) {
		return Reject(RejectInvalidDateOrder, "expiryDate",
			"el vencimiento debe ser posterior a la fecha de fabricación")
	}
	for i := range r.list {
		if r.list[i].ID.Equal(self) {
			continue
		}
		if strings.EqualFold(r.list[i].BatchNumber, code) {
			return Reject(RejectDuplicateIdentifier, "batchNumber",
				fmt.Sprintf("%s %q ya existe en este producto", r.policy.BatchLabel, r.list[i].BatchNumber))
		}
	}
	return nil
}

func (r *BatchRegister) indexOf(id entity.RecordID) int {
	for i := range r.list {
		if r.list[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}

func (r *BatchRegister) emit() {
	if r.onChange != nil {
		r.onChange(cloneBatches(r.list))
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cloneBatches(in []entity.Batch) []entity.Batch {
	out := make([]entity.Batch, len(in))
	copy(out, in)
	return out
}
