package entity

import "time"

// Estados de ciclo de vida de un SerialUnit. Aquí solo se asigna "available";
// "sold" y "returned" los mutan colaboradores externos.
const (
	SerialStatusAvailable = "available"
	SerialStatusSold      = "sold"
	SerialStatusReturned  = "returned"
)

// SerialUnit representa una unidad física individual (cantidad uno) con su
// ventana de garantía. El número de serie se guarda en mayúsculas y es único
// (case-insensitive) dentro del registro del producto. WarrantyEndDate es
// siempre derivado de WarrantyStartDate + WarrantyMonths al insertar; nunca se
// edita directamente.
type SerialUnit struct {
	ID                RecordID
	SerialNumber      string
	PurchaseDate      *time.Time
	WarrantyStartDate *time.Time
	WarrantyMonths    int
	WarrantyEndDate   *time.Time // derivado
	Status            string
}
