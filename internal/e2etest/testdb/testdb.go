// Package testdb creates a throwaway Postgres database for integration
// tests. Tests are skipped when TEST_DATABASE_URI is not set.
package testdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const envDatabaseURI = "TEST_DATABASE_URI"

var ErrNoDatabase = errors.New(envDatabaseURI + " is not set")

type TestDBInstance struct {
	DSN   string
	admin string
	name  string
}

func NewTestDBInstance() (*TestDBInstance, error) {
	admin := os.Getenv(envDatabaseURI)
	if admin == "" {
		return nil, ErrNoDatabase
	}

	u, err := url.Parse(admin)
	if err != nil {
		return nil, fmt.Errorf("%s must be a URL: %w", envDatabaseURI, err)
	}

	name := "checkout_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, admin)
	if err != nil {
		return nil, fmt.Errorf("failed to connect test server: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return nil, fmt.Errorf("failed to create test database: %w", err)
	}

	u.Path = "/" + name
	return &TestDBInstance{DSN: u.String(), admin: admin, name: name}, nil
}

// Down drops the database, closing any connections still open to it.
func (i *TestDBInstance) Down() error {
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, i.admin)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	_, err = conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{i.name}.Sanitize()+" WITH (FORCE)")
	return err
}
