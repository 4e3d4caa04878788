package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AvailableCashID id fijo de la fila única de efectivo disponible.
const AvailableCashID = "00000000-0000-0000-0000-000000000000"

// AvailableCash fondo de efectivo (o equivalente) disponible para reponer stock. Fila única.
type AvailableCash struct {
	ID        string
	Amount    decimal.Decimal
	Version   int64 // control optimista de concurrencia
	UpdatedAt time.Time
}

// AvailableCashLog auditoría append-only de cada cambio del efectivo disponible.
type AvailableCashLog struct {
	ID             string
	PreviousAmount decimal.Decimal
	NewAmount      decimal.Decimal
	Difference     decimal.Decimal
	Reason         string
	AdminID        string
	Timestamp      time.Time
}
