package lots

import "time"

// WarrantyTier estado de la ventana de garantía de una unidad serial.
type WarrantyTier string

const (
	WarrantyActive  WarrantyTier = "active"
	WarrantyExpired WarrantyTier = "expired"
)

// AddMonthsClamped suma meses calendario a una fecha. Si el día del mes no
// existe en el mes resultante, se ajusta al último día de ese mes (31-ene + 1
// mes => 28/29-feb), a diferencia de time.AddDate que normaliza desbordando al
// mes siguiente.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hh, mm, ss := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Día 0 del mes siguiente = último día de este mes.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WarrantyEnd deriva la fecha de fin de garantía: inicio + meses calendario.
// Devuelve nil si no hay fecha de inicio. Derivación pura: recomputarla sobre
// una unidad almacenada reproduce siempre el valor guardado.
func WarrantyEnd(start *time.Time, months int) *time.Time {
	if start == nil {
		return nil
	}
	end := AddMonthsClamped(*start, months)
	return &end
}

// ClassifyWarranty clasifica la ventana de garantía contra "now": expired si
// la garantía ya terminó, active en caso contrario. Una unidad sin fecha de
// fin (sin inicio de garantía registrado) se trata como active.
func ClassifyWarranty(end *time.Time, now time.Time) WarrantyTier {
	if end == nil {
		return WarrantyActive
	}
	if end.Before(now) {
		return WarrantyExpired
	}
	return WarrantyActive
}
