//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers Postgres instance with both
// connection flavors the stores use: a pgx pool for the hot-path stores and
// a database/sql handle for the audit store.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	Pool      *pgxpool.Pool
	DB        *sql.DB
}

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vetgate_test"),
		tcpostgres.WithUsername("vetgate"),
		tcpostgres.WithPassword("vetgate"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect pgx pool: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open database/sql handle: %v", err)
	}
	db.SetConnMaxLifetime(time.Hour)

	pc := &PostgresContainer{
		Container: container,
		URL:       url,
		Pool:      pool,
		DB:        db,
	}
	if err := pc.applySchema(ctx); err != nil {
		pc.Close(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	// Container lifetime is managed by the singleton Manager; Ryuk reaps it.

	return pc
}

// TruncateTables clears the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	_, err := p.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s CASCADE", strings.Join(tables, ", ")))
	return err
}

// Close releases both connection handles and terminates the container.
func (p *PostgresContainer) Close(ctx context.Context) {
	p.Pool.Close()
	_ = p.DB.Close()
	_ = p.Container.Terminate(ctx)
}

// applySchema runs db/schema.sql from the repository root.
func (p *PostgresContainer) applySchema(ctx context.Context) error {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("cannot locate schema file")
	}
	schemaPath := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "db", "schema.sql")
	ddl, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := p.Pool.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
