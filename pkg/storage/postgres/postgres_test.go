package postgres_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"linkshield/pkg/storage/postgres"
)

const (
	testImage    = "postgres:17"
	testUser     = "postgres"
	testPassword = "postgres"
	testDatabase = "linkshield_test"
)

// setupTestDB starts a throwaway PostgreSQL container, connects a PgSQL
// handle to it and applies the schema migrations. The returned cleanup stops
// the container.
func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImage,
			ExposedPorts: []string{"5432"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDatabase,
			},
			WaitingFor: wait.ForListeningPort("5432"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pgSQL, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               host,
		Port:               port.Int(),
		Database:           testDatabase,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(pgSQL.DB.(*sql.DB), filepath.Join("..", "..", "..", "migrations")))

	return pgSQL, func() {
		_ = pgSQL.Close()
		_ = container.Terminate(ctx)
	}
}
