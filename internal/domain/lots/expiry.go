// Package lots contiene los servicios de dominio puros de trazabilidad:
// clasificación de vencimiento (badges y prioridad FEFO) y aritmética de
// ventanas de garantía. Sin estado, sin efectos, deterministas.
package lots

import (
	"math"
	"time"
)

// ExpiryTier severidad de vencimiento de un lote.
type ExpiryTier string

const (
	TierUndated      ExpiryTier = "undated"       // sin fecha de vencimiento
	TierExpired      ExpiryTier = "expired"       // ya vencido
	TierExpiringSoon ExpiryTier = "expiring-soon" // vence dentro de la ventana de alerta
	TierHealthy      ExpiryTier = "healthy"
)

// ExpiringSoonWindowDays ventana de alerta: un lote que vence dentro de estos
// días se clasifica expiring-soon.
const ExpiringSoonWindowDays = 30

// ExpiryStatus resultado de clasificar una fecha de vencimiento.
// DaysRemaining solo es significativo cuando Tier != TierUndated.
type ExpiryStatus struct {
	Tier          ExpiryTier
	DaysRemaining int
}

// ClassifyExpiry clasifica una fecha contra "now".
// DaysRemaining = ceil((date - now) / 24h); negativo => expired,
// 0..30 => expiring-soon, >30 => healthy, fecha ausente => undated.
func ClassifyExpiry(date *time.Time, now time.Time) ExpiryStatus {
	if date == nil {
		return ExpiryStatus{Tier: TierUndated}
	}
	days := int(math.Ceil(date.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return ExpiryStatus{Tier: TierExpired, DaysRemaining: days}
	case days <= ExpiringSoonWindowDays:
		return ExpiryStatus{Tier: TierExpiringSoon, DaysRemaining: days}
	default:
		return ExpiryStatus{Tier: TierHealthy, DaysRemaining: days}
	}
}
