//go:build integration

// Package pgtest starts a throwaway PostgreSQL container with the embedded migrations applied.
package pgtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupDB returns a connection to a shared container, started once per test binary.
// Tables are truncated so each test starts empty.
func SetupDB(t *testing.T) *database.DB {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("pgtest: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, sharedDSN)
	if err != nil {
		t.Fatalf("pgtest: failed to connect: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Exec(ctx, `TRUNCATE sickness_declarations, absence_requests, users CASCADE`); err != nil {
		t.Fatalf("pgtest: failed to truncate tables: %v", err)
	}
	return db
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "leave",
			"POSTGRES_PASSWORD": "leave",
			"POSTGRES_DB":       "leave_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://leave:leave@%s:%s/leave_test?sslmode=disable", host, port.Port())

	migrator, err := database.NewMigrator(dsn)
	if err != nil {
		return "", err
	}
	defer migrator.Close()
	if err := migrator.Up(ctx); err != nil {
		return "", err
	}

	return dsn, nil
}
