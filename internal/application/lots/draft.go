package lots

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchDraft borrador de entrada del formulario de lotes. Es el valor mutable
// separado de la lista confirmada: tras cada alta aceptada, los campos
// descriptivos (costo, MRP, ubicación, fechas) se conservan como defaults para
// la siguiente entrada rápida y solo se limpian el número de lote y la
// cantidad.
type BatchDraft struct {
	BatchNumber       string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	Quantity          decimal.Decimal
	CostPrice         decimal.Decimal
	MRP               decimal.Decimal
	Location          string
}

// carryOver devuelve el borrador para la siguiente entrada: descriptivos
// pegajosos, identificador y cantidad en blanco.
func (d BatchDraft) carryOver() BatchDraft {
	return BatchDraft{
		ManufacturingDate: d.ManufacturingDate,
		ExpiryDate:        d.ExpiryDate,
		CostPrice:         d.CostPrice,
		MRP:               d.MRP,
		Location:          d.Location,
	}
}

// SerialDraft borrador de entrada del formulario de seriales. Tras cada alta
// solo se limpia el número de serie; fechas y duración de garantía se
// conservan para la siguiente unidad.
type SerialDraft struct {
	SerialNumber      string
	PurchaseDate      *time.Time
	WarrantyStartDate *time.Time
	WarrantyMonths    int
}

func (d SerialDraft) carryOver() SerialDraft {
	return SerialDraft{
		PurchaseDate:      d.PurchaseDate,
		WarrantyStartDate: d.WarrantyStartDate,
		WarrantyMonths:    d.WarrantyMonths,
	}
}
