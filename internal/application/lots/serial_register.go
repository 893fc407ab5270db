package lots

import (
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/lotes-api/internal/domain"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/lots"
)

// SerialChangeFunc recibe la lista completa y actualizada tras cada mutación
// aceptada (copia, sin alias sobre el estado interno).
type SerialChangeFunc func(units []entity.SerialUnit)

// SerialRegister posee la lista de unidades seriales de UN producto durante
// una sesión de edición: altas con derivación de garantía, detección de
// duplicados y borrado restringido para unidades ya persistidas.
type SerialRegister struct {
	product  entity.Product
	policy   entity.CategoryPolicy
	guard    MutabilityGuard
	ids      entity.SessionIDSource
	now      func() time.Time
	onChange SerialChangeFunc

	list  []entity.SerialUnit
	draft SerialDraft
}

// NewSerialRegister construye el registro con las unidades ya persistidas del
// producto. La duración de garantía del borrador se siembra del producto o,
// en su defecto, de la política de la categoría.
func NewSerialRegister(product entity.Product, policy entity.CategoryPolicy, initial []entity.SerialUnit, onChange SerialChangeFunc, now func() time.Time) *SerialRegister {
	if now == nil {
		now = time.Now
	}
	r := &SerialRegister{
		product:  product,
		policy:   policy,
		now:      now,
		onChange: onChange,
		list:     cloneSerials(initial),
	}
	months := product.WarrantyMonths
	if months == 0 {
		months = policy.DefaultWarrantyMonths
	}
	r.draft = SerialDraft{WarrantyMonths: months}
	return r
}

// Draft devuelve el borrador actual del formulario de entrada.
func (r *SerialRegister) Draft() SerialDraft { return r.draft }

// List devuelve una copia de la lista actual en orden de inserción.
func (r *SerialRegister) List() []entity.SerialUnit { return cloneSerials(r.list) }

// Add valida el borrador y, si lo acepta, normaliza el serial a mayúsculas,
// deriva la fecha de fin de garantía (aritmética de meses calendario con
// ajuste de fin de mes), asigna id de sesión y status "available", agrega
// copy-on-write y emite onChange. Solo el número de serie se limpia del
// borrador; fechas y duración quedan como defaults de la siguiente unidad.
func (r *SerialRegister) Add(d SerialDraft) (entity.SerialUnit, error) {
	serial := strings.TrimSpace(d.SerialNumber)
	if serial == "" {
		return entity.SerialUnit{}, Reject(RejectEmptyIdentifier, "serialNumber",
			"el número de serie es requerido")
	}
	for i := range r.list {
		if strings.EqualFold(r.list[i].SerialNumber, serial) {
			return entity.SerialUnit{}, Reject(RejectDuplicateIdentifier, "serialNumber",
				fmt.Sprintf("el serial %q ya existe en este producto", r.list[i].SerialNumber))
		}
	}
	u := entity.SerialUnit{
		ID:                r.ids.Next(r.now()),
		SerialNumber:      normalizeCode(serial),
		PurchaseDate:      d.PurchaseDate,
		WarrantyStartDate: d.WarrantyStartDate,
		WarrantyMonths:    d.WarrantyMonths,
		WarrantyEndDate:   lots.WarrantyEnd(d.WarrantyStartDate, d.WarrantyMonths),
		Status:            entity.SerialStatusAvailable,
	}
	r.list = append(cloneSerials(r.list), u)
	r.draft = d.carryOver()
	r.emit()
	return u, nil
}

// Remove elimina la unidad por id. El borrado de una unidad persistida se
// RECHAZA (la lista queda intacta): perderla descartaría en silencio el
// historial de garantía de una unidad física única.
func (r *SerialRegister) Remove(id entity.RecordID) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	if !r.guard.CanDelete(KindSerial, id) {
		return Reject(RejectPersistedImmutable, "id",
			"una unidad serial ya persistida no puede eliminarse en esta sesión")
	}
	next := make([]entity.SerialUnit, 0, len(r.list)-1)
	next = append(next, r.list[:idx]...)
	next = append(next, r.list[idx+1:]...)
	r.list = next
	r.emit()
	return nil
}

// Replace rehidrata la lista tras un commit. No emite onChange.
func (r *SerialRegister) Replace(list []entity.SerialUnit) {
	r.list = cloneSerials(list)
}

// SerialStats agregados del registro serial.
type SerialStats struct {
	Total      int
	Available  int
	InWarranty int
}

// Stats total de unidades, disponibles y con garantía vigente.
func (r *SerialRegister) Stats() SerialStats {
	now := r.now()
	st := SerialStats{Total: len(r.list)}
	for i := range r.list {
		u := r.list[i]
		if u.Status == entity.SerialStatusAvailable {
			st.Available++
		}
		if u.WarrantyEndDate != nil && u.WarrantyEndDate.After(now) {
			st.InWarranty++
		}
	}
	return st
}

// ClassifyWarranty estado de garantía de una unidad contra "now".
func (r *SerialRegister) ClassifyWarranty(u entity.SerialUnit, now time.Time) lots.WarrantyTier {
	return lots.ClassifyWarranty(u.WarrantyEndDate, now)
}

func (r *SerialRegister) indexOf(id entity.RecordID) int {
	for i := range r.list {
		if r.list[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}

func (r *SerialRegister) emit() {
	if r.onChange != nil {
		r.onChange(cloneSerials(r.list))
	}
}

func cloneSerials(in []entity.SerialUnit) []entity.SerialUnit {
	out := make([]entity.SerialUnit, len(in))
	copy(out, in)
	return out
}
