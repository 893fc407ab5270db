package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	domlots "github.com/tu-usuario/lotes-api/internal/domain/lots"
)

// Las fechas de lotes y garantías viajan como "YYYY-MM-DD" (fechas calendario,
// sin componente horario).
const dateLayout = "2006-01-02"

// ParseDate parsea una fecha calendario opcional; cadena vacía => nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// BatchEntryRequest entrada del formulario de lote (alta o guardado).
type BatchEntryRequest struct {
	BatchNumber       string          `json:"batch_number"`
	ManufacturingDate string          `json:"manufacturing_date"` // YYYY-MM-DD, opcional
	ExpiryDate        string          `json:"expiry_date"`        // YYYY-MM-DD, opcional según categoría
	Quantity          decimal.Decimal `json:"quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	MRP               decimal.Decimal `json:"mrp"`
	Location          string          `json:"location"`
}

// ToDraft convierte la entrada HTTP en borrador del registro.
func (in BatchEntryRequest) ToDraft() (lots.BatchDraft, error) {
	mfg, err := ParseDate(in.ManufacturingDate)
	if err != nil {
		return lots.BatchDraft{}, err
	}
	exp, err := ParseDate(in.ExpiryDate)
	if err != nil {
		return lots.BatchDraft{}, err
	}
	return lots.BatchDraft{
		BatchNumber:       in.BatchNumber,
		ManufacturingDate: mfg,
		ExpiryDate:        exp,
		Quantity:          in.Quantity,
		CostPrice:         in.CostPrice,
		MRP:               in.MRP,
		Location:          in.Location,
	}, nil
}

// BatchResponse salida de un lote con su clasificación de vencimiento.
type BatchResponse struct {
	ID                string          `json:"id"`
	Persisted         bool            `json:"persisted"`
	BatchNumber       string          `json:"batch_number"`
	ManufacturingDate string          `json:"manufacturing_date,omitempty"`
	ExpiryDate        string          `json:"expiry_date,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	MRP               decimal.Decimal `json:"mrp"`
	Location          string          `json:"location,omitempty"`
	Status            string          `json:"status"`
	ExpiryTier        string          `json:"expiry_tier"`
	DaysRemaining     int             `json:"days_remaining"`
}

// ToBatchResponse mapea un lote a su salida HTTP, clasificando contra now.
func ToBatchResponse(b entity.Batch, now time.Time) BatchResponse {
	cls := domlots.ClassifyExpiry(b.ExpiryDate, now)
	return BatchResponse{
		ID:                b.ID.String(),
		Persisted:         b.ID.IsPersisted(),
		BatchNumber:       b.BatchNumber,
		ManufacturingDate: formatDate(b.ManufacturingDate),
		ExpiryDate:        formatDate(b.ExpiryDate),
		Quantity:          b.Quantity,
		CostPrice:         b.CostPrice,
		MRP:               b.MRP,
		Location:          b.Location,
		Status:            b.Status,
		ExpiryTier:        string(cls.Tier),
		DaysRemaining:     cls.DaysRemaining,
	}
}

// ToBatchResponses mapea la lista completa.
func ToBatchResponses(list []entity.Batch, now time.Time) []BatchResponse {
	out := make([]BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, ToBatchResponse(b, now))
	}
	return out
}

// BatchDraftResponse borrador actual del formulario (defaults pegajosos).
type BatchDraftResponse struct {
	BatchNumber       string          `json:"batch_number"`
	ManufacturingDate string          `json:"manufacturing_date,omitempty"`
	ExpiryDate        string          `json:"expiry_date,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	MRP               decimal.Decimal `json:"mrp"`
	Location          string          `json:"location,omitempty"`
	QuantityLocked    bool            `json:"quantity_locked,omitempty"`
	BatchLabel        string          `json:"batch_label"`
}

// ToBatchDraftResponse mapea el borrador con la etiqueta de la categoría.
func ToBatchDraftResponse(d lots.BatchDraft, label string, quantityLocked bool) BatchDraftResponse {
	return BatchDraftResponse{
		BatchNumber:       d.BatchNumber,
		ManufacturingDate: formatDate(d.ManufacturingDate),
		ExpiryDate:        formatDate(d.ExpiryDate),
		Quantity:          d.Quantity,
		CostPrice:         d.CostPrice,
		MRP:               d.MRP,
		Location:          d.Location,
		QuantityLocked:    quantityLocked,
		BatchLabel:        label,
	}
}

// BatchStatsResponse agregados del registro de lotes.
type BatchStatsResponse struct {
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ExpiredCount  int             `json:"expired_count"`
	NextToExpire  *BatchResponse  `json:"next_to_expire,omitempty"`
}

// SerialEntryRequest entrada del formulario de serial.
type SerialEntryRequest struct {
	SerialNumber      string `json:"serial_number"`
	PurchaseDate      string `json:"purchase_date"`       // YYYY-MM-DD, opcional
	WarrantyStartDate string `json:"warranty_start_date"` // YYYY-MM-DD, opcional
	WarrantyMonths    int    `json:"warranty_months"`
}

// ToDraft convierte la entrada HTTP en borrador del registro serial.
func (in SerialEntryRequest) ToDraft() (lots.SerialDraft, error) {
	purchase, err := ParseDate(in.PurchaseDate)
	if err != nil {
		return lots.SerialDraft{}, err
	}
	start, err := ParseDate(in.WarrantyStartDate)
	if err != nil {
		return lots.SerialDraft{}, err
	}
	return lots.SerialDraft{
		SerialNumber:      in.SerialNumber,
		PurchaseDate:      purchase,
		WarrantyStartDate: start,
		WarrantyMonths:    in.WarrantyMonths,
	}, nil
}

// SerialResponse salida de una unidad serial con su estado de garantía.
type SerialResponse struct {
	ID                string `json:"id"`
	Persisted         bool   `json:"persisted"`
	SerialNumber      string `json:"serial_number"`
	PurchaseDate      string `json:"purchase_date,omitempty"`
	WarrantyStartDate string `json:"warranty_start_date,omitempty"`
	WarrantyMonths    int    `json:"warranty_months"`
	WarrantyEndDate   string `json:"warranty_end_date,omitempty"`
	Status            string `json:"status"`
	WarrantyTier      string `json:"warranty_tier"`
}

// ToSerialResponse mapea una unidad a su salida HTTP, clasificando contra now.
func ToSerialResponse(u entity.SerialUnit, now time.Time) SerialResponse {
	return SerialResponse{
		ID:                u.ID.String(),
		Persisted:         u.ID.IsPersisted(),
		SerialNumber:      u.SerialNumber,
		PurchaseDate:      formatDate(u.PurchaseDate),
		WarrantyStartDate: formatDate(u.WarrantyStartDate),
		WarrantyMonths:    u.WarrantyMonths,
		WarrantyEndDate:   formatDate(u.WarrantyEndDate),
		Status:            u.Status,
		WarrantyTier:      string(domlots.ClassifyWarranty(u.WarrantyEndDate, now)),
	}
}

// ToSerialResponses mapea la lista completa.
func ToSerialResponses(list []entity.SerialUnit, now time.Time) []SerialResponse {
	out := make([]SerialResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToSerialResponse(u, now))
	}
	return out
}

// SerialStatsResponse agregados del registro serial.
type SerialStatsResponse struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	InWarranty int `json:"in_warranty"`
}

// SessionResponse salida al abrir una sesión de registro.
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	ProductID string           `json:"product_id"`
	Batches   []BatchResponse  `json:"batches"`
	Serials   []SerialResponse `json:"serials"`
}

// CommitResponse salida del commit: listas con ids autoritativos.
type CommitResponse struct {
	Batches []BatchResponse  `json:"batches"`
	Serials []SerialResponse `json:"serials"`
}
