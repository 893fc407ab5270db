package entity

import (
	"strconv"
	"time"
)

// Umbral heredado del comportamiento de referencia: un id numérico igual o mayor
// a este valor se interpreta como timestamp en milisegundos (id de sesión).
const legacySessionThreshold = 1_000_000_000_000

// RecordID identifica un lote o un serial y lleva su estado de ciclo de vida
// como dato explícito: Persisted (asignado por la base de datos) o Session
// (token local en milisegundos, generado al crear el registro en la sesión
// de edición y todavía no confirmado en almacenamiento durable).
type RecordID struct {
	persisted string
	session   int64
}

// NewPersistedID construye un id de registro ya confirmado en la base de datos.
func NewPersistedID(dbID string) RecordID {
	return RecordID{persisted: dbID}
}

// NewSessionID construye un id local de sesión a partir del instante dado.
func NewSessionID(now time.Time) RecordID {
	return RecordID{session: now.UnixMilli()}
}

// IsZero indica si el id está vacío (registro sin identificar).
func (id RecordID) IsZero() bool {
	return id.persisted == "" && id.session == 0
}

// IsPersisted indica si el registro ya fue confirmado en almacenamiento durable.
// Un id vacío se trata como no persistido.
func (id RecordID) IsPersisted() bool {
	return id.persisted != ""
}

// Persisted devuelve el id de base de datos, si existe.
func (id RecordID) Persisted() (string, bool) {
	return id.persisted, id.persisted != ""
}

// Session devuelve el token local de sesión, si existe.
func (id RecordID) Session() (int64, bool) {
	return id.session, id.session != 0
}

// Equal compara dos ids por valor.
func (id RecordID) Equal(other RecordID) bool {
	return id.persisted == other.persisted && id.session == other.session
}

// String representación legible del id (para logs y payloads).
func (id RecordID) String() string {
	if id.persisted != "" {
		return id.persisted
	}
	if id.session != 0 {
		return strconv.FormatInt(id.session, 10)
	}
	return ""
}

// ParseLegacyID clasifica un id "plano" que llega sin etiqueta de ciclo de vida
// (filas antiguas, payloads de clientes viejos) usando la heurística de forma:
// string no numérico => persistido (UUID de base de datos); número por debajo
// del umbral => persistido (id secuencial pequeño); número sobre el umbral =>
// token de sesión en milisegundos. Vacío => id cero (no persistido).
func ParseLegacyID(raw string) RecordID {
	if raw == "" {
		return RecordID{}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return RecordID{persisted: raw}
	}
	if n >= legacySessionThreshold {
		return RecordID{session: n}
	}
	return RecordID{persisted: raw}
}

// SessionIDSource genera tokens de sesión estrictamente crecientes. Dos altas
// dentro del mismo milisegundo no deben colisionar, así que el generador avanza
// un milisegundo artificial cuando el reloj no se movió.
type SessionIDSource struct {
	last int64
}

// Next devuelve el siguiente id de sesión para el instante dado.
func (s *SessionIDSource) Next(now time.Time) RecordID {
	ms := now.UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return RecordID{session: ms}
}
