package database

import (
	"io"
	"testing"

	"ticket-booking/pkg/utils"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_AreOrdered(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	up, name, err := src.ReadUp(next)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_bookings", name)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "seq        BIGSERIAL")
}

func TestMigrationURL_EscapesCredentials(t *testing.T) {
	got := MigrationURL(utils.DatabaseConfig{
		Host: "db", Port: "5433", Name: "tickets", User: "app", Password: "p@ss/word",
	})

	assert.Equal(t, "pgx5://app:p%40ss%2Fword@db:5433/tickets?sslmode=disable", got)
}

func TestConnString(t *testing.T) {
	dsn := ConnString(utils.DatabaseConfig{
		Host: "db", Port: "5433", Name: "tickets", User: "app", Password: "secret",
	})

	assert.Equal(t, "user=app password=secret dbname=tickets sslmode=disable host=db port=5433", dsn)
}
