package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/AferriDaniel/coaster/integration/database/pg"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: "23505"}
	assert.True(t, pg.IsUniqueViolation(unique))
	assert.True(t, pg.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, pg.IsUniqueViolation(errors.New("boom")))
	assert.False(t, pg.IsUniqueViolation(nil))

	assert.True(t, pg.IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsForeignKeyViolation(unique))

	assert.True(t, pg.IsNotFound(pgx.ErrNoRows))
	assert.False(t, pg.IsNotFound(errors.New("boom")))
}

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "://not-a-url"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseConnString)
}
