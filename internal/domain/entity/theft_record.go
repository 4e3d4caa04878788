package entity

import "time"

// TheftRecord pérdida auditada; borrarlo devuelve las unidades al stock.
type TheftRecord struct {
	ID          string
	ProductID   string
	ProductName string // copia del nombre al momento del registro
	Quantity    int    // unidades perdidas (>0)
	AdminID     string
	Timestamp   time.Time
}
