// Package ledger contiene la aritmética monetaria del ledger: redondeo half-up a 2 decimales
// aplicado cada vez que se suma dinero.
package ledger

import "github.com/shopspring/decimal"

// Places decimales de todo importe persistido.
const Places = 2

// Round redondea a 2 decimales (mitad hacia arriba, alejándose de cero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Add suma y redondea.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Add(b))
}

// Sub resta y redondea.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b))
}

// LineTotal precio unitario × cantidad, redondeado.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum suma una serie redondeando tras cada adición (misma disciplina que el ledger).
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = Add(total, v)
	}
	return total
}
