package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/inventory"
)

func TestApplyDelta(t *testing.T) {
	next, err := inventory.ApplyDelta(5, -2)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	next, err = inventory.ApplyDelta(2, -3)
	assert.ErrorIs(t, err, domain.ErrNegativeStockRejected)
	assert.Equal(t, 2, next, "en error el stock no cambia")
}

func TestValidateMovement(t *testing.T) {
	cases := []struct {
		typ     string
		qty     int
		wantErr bool
	}{
		{entity.MovementTypeAddStock, 3, false},
		{entity.MovementTypeAddStock, -1, true},
		{entity.MovementTypeCorrection, -4, false},
		{entity.MovementTypeCorrection, 0, true},
		{entity.MovementTypeTheft, -2, false},
		{entity.MovementTypeTheft, 2, true},
		{entity.MovementTypeSale, -1, false},
		{"gift", 1, true},
	}
	for _, tc := range cases {
		err := inventory.ValidateMovement(tc.typ, tc.qty)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s %d", tc.typ, tc.qty)
		} else {
			assert.NoError(t, err, "%s %d", tc.typ, tc.qty)
		}
	}
}

func TestFold(t *testing.T) {
	movs := []*entity.InventoryMovement{
		{Quantity: 5}, {Quantity: -2}, {Quantity: 1},
	}
	assert.Equal(t, 4, inventory.Fold(movs))
}
