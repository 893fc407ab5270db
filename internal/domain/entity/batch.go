package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida de un Batch. Aquí solo se asigna "active";
// los demás estados los mutan colaboradores externos (ventas, ajustes).
const (
	BatchStatusActive   = "active"
	BatchStatusDepleted = "depleted"
	BatchStatusBlocked  = "blocked"
)

// Batch representa un lote de stock fungible de un producto: una cantidad que
// comparte fecha de fabricación, fecha de vencimiento y ubicación. El número de
// lote se guarda normalizado a mayúsculas y es único (case-insensitive) dentro
// del registro del producto.
type Batch struct {
	ID                RecordID
	BatchNumber       string
	ManufacturingDate *time.Time // opcional
	ExpiryDate        *time.Time // obligatorio salvo categorías exentas
	Quantity          decimal.Decimal
	CostPrice         decimal.Decimal // costo unitario de adquisición
	MRP               decimal.Decimal // precio de venta de referencia (informativo)
	Location          string
	Status            string
}

// Value valoración del lote: costo unitario por cantidad.
func (b Batch) Value() decimal.Decimal {
	return b.CostPrice.Mul(b.Quantity)
}
