package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bar-stock-api/internal/domain"
)

func TestAsConflict_AbortosReintentables(t *testing.T) {
	for _, code := range []string{"40P01", "40001"} {
		cause := fmt.Errorf("bloquear producto: %w", &pgconn.PgError{Code: code})
		err := asConflict(cause)
		assert.ErrorIs(t, err, domain.ErrConflict, code)
		var pgErr *pgconn.PgError
		assert.ErrorAs(t, err, &pgErr, code)
		assert.True(t, domain.IsDomainError(err), code)
	}
}

func TestAsConflict_RestoSinCambios(t *testing.T) {
	assert.NoError(t, asConflict(nil))

	check := &pgconn.PgError{Code: "23514"}
	assert.Same(t, check, asConflict(check))

	plain := errors.New("conexión cerrada")
	assert.Equal(t, plain, asConflict(plain))
	assert.False(t, errors.Is(asConflict(plain), domain.ErrConflict))
}
