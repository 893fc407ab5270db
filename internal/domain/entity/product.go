package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de trazabilidad de un producto: por lotes (cantidad con vencimiento)
// o por seriales (unidades individuales con garantía).
const (
	TrackingBatch  = "batch"
	TrackingSerial = "serial"
	TrackingNone   = "none"
)

// Product representa un producto o SKU trazable. Los registros de lotes y
// seriales lo consumen como contexto de solo lectura: SKU para sugerir códigos,
// CostPrice/Price como defaults de entrada y WarrantyMonths como duración de
// garantía semilla. Category selecciona la CategoryPolicy inyectada.
type Product struct {
	ID             string
	SKU            string // código único
	Name           string
	UnitMeasure    string
	TrackingType   string // batch, serial, none
	CostPrice      decimal.Decimal
	Price          decimal.Decimal
	WarrantyMonths int
	Category       string
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
