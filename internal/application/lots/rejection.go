package lots

import (
	"errors"
	"fmt"
)

// RejectionKind clasifica los rechazos de validación de los registros.
// Son errores deterministas de entrada: no hay política de reintento y ningún
// rechazo deja el registro en estado inválido.
type RejectionKind string

const (
	// RejectEmptyIdentifier número de lote o serie vacío.
	RejectEmptyIdentifier RejectionKind = "EMPTY_IDENTIFIER"
	// RejectDuplicateIdentifier número de lote o serie ya presente (case-insensitive).
	RejectDuplicateIdentifier RejectionKind = "DUPLICATE_IDENTIFIER"
	// RejectMissingExpiry la categoría exige fecha de vencimiento y no llegó.
	RejectMissingExpiry RejectionKind = "MISSING_EXPIRY"
	// RejectInvalidDateOrder el vencimiento no es posterior a la fabricación.
	RejectInvalidDateOrder RejectionKind = "INVALID_DATE_ORDER"
	// RejectNonPositiveQuantity la cantidad del lote debe ser mayor que cero.
	RejectNonPositiveQuantity RejectionKind = "NON_POSITIVE_QUANTITY"
	// RejectPersistedImmutable edición de cantidad o borrado sobre un registro ya persistido.
	RejectPersistedImmutable RejectionKind = "PERSISTED_IMMUTABLE"
)

// RejectionError rechazo tipado de validación: clase + campo en conflicto +
// mensaje humano. Satisface error y se extrae con errors.As en los handlers.
type RejectionError struct {
	Kind    RejectionKind
	Field   string
	Message string
}

// Error implementa error.
func (e *RejectionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Reject construye un rechazo tipado.
func Reject(kind RejectionKind, field, message string) *RejectionError {
	return &RejectionError{Kind: kind, Field: field, Message: message}
}

// AsRejection extrae el RejectionError de err, si lo hay.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
