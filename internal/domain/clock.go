package domain

import "time"

// Clock fuente de tiempo para movimientos y logs. Permite fijar el reloj en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock usa la hora del sistema en UTC.
type SystemClock struct{}

// Now devuelve time.Now() en UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock devuelve siempre el mismo instante (tests y herramientas de carga).
type FixedClock struct {
	T time.Time
}

// Now devuelve T.
func (c FixedClock) Now() time.Time { return c.T }
