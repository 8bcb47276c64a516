package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores de Postgres
// ──────────────────────────────────────────────────────────────────────────────

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})),
		"debe reconocer el código aun envuelto")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("no es un PgError")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{
		Code:           "23503",
		ConstraintName: "stock_movements_product_id_fkey",
	}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestIsLockContention(t *testing.T) {
	for _, code := range []string{"55P03", "40001", "40P01"} {
		assert.True(t, isLockContention(&pgconn.PgError{Code: code}), "código %s es reintentable", code)
	}
	assert.False(t, isLockContention(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isLockContention(errors.New("timeout de red")))
}
