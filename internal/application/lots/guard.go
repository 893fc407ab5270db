// Package lots implementa los registros de sesión de lotes y seriales: la
// lista en memoria que posee una sesión de edición de producto, con
// validación, ordenamiento FEFO, defaults pegajosos y protección de registros
// ya persistidos. Toda mutación es copy-on-write y se emite completa al
// callback onChange; la persistencia es responsabilidad del colaborador que
// recibe la lista.
package lots

import "github.com/tu-usuario/lotes-api/internal/domain/entity"

// RecordKind distingue lotes de seriales en las decisiones del guard.
type RecordKind int

const (
	KindBatch RecordKind = iota
	KindSerial
)

// MutabilityGuard política compartida de mutabilidad: decide si un registro es
// de sesión (libremente editable) o persistido (protegido para no corromper
// movimientos de stock ya confirmados). Ambos registros consultan el MISMO
// guard; la asimetría de borrado vive en un solo lugar.
type MutabilityGuard struct{}

// IsPersisted indica si el id corresponde a un registro ya confirmado en
// almacenamiento durable.
func (MutabilityGuard) IsPersisted(id entity.RecordID) bool {
	return id.IsPersisted()
}

// CanEditQuantity la cantidad de un lote persistido está bloqueada: ya pudo
// respaldar movimientos de stock. Campos descriptivos siguen editables.
func (g MutabilityGuard) CanEditQuantity(id entity.RecordID) bool {
	return !g.IsPersisted(id)
}

// CanDelete política de borrado por tipo de registro. Un lote persistido puede
// borrarse (el stock se reconcilia por cantidad en movimientos); un serial
// persistido no, porque perdería silenciosamente el registro de una unidad
// física única con su garantía.
func (g MutabilityGuard) CanDelete(kind RecordKind, id entity.RecordID) bool {
	if kind == KindSerial {
		return !g.IsPersisted(id)
	}
	return true
}
