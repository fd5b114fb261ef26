package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range migrations {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), sqlx.NewDb(db, "postgres")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS body_analyses")).
		WillReturnError(errors.New("permission denied"))

	err = Migrate(context.Background(), sqlx.NewDb(db, "postgres"))
	assert.EqualError(t, err, "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "diet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "dietapp")
	t.Setenv("DB_SSLMODE", "")

	assert.Equal(t, "host=db port=5432 user=diet password=secret dbname=dietapp sslmode=disable", DSNFromEnv())
}

func TestEnvInt(t *testing.T) {
	t.Setenv("X_CONNS", "7")
	assert.Equal(t, 7, envInt("X_CONNS", 3))

	t.Setenv("X_CONNS", "abc")
	assert.Equal(t, 3, envInt("X_CONNS", 3))
}
