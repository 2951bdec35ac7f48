package dbtest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"money_saver/pkg/application/connectors"
)

// EnvDSN names the variable holding the test database DSN. Tests that need
// Postgres are skipped when it is empty.
const EnvDSN = "PG_TEST_DSN"

// MigrateFromFile executes all SQL queries from the files over a database
// connection.
func MigrateFromFile(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.ExecContext(ctx, string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec(%s): %w", fileName, err)
		}
	}

	return nil
}

// Connect opens the test database, applies the migrations and empties the
// given tables. The connection is closed with the test.
func Connect(t *testing.T, migrations []string, tables ...string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skip(EnvDSN + " is not set")
	}

	rq := require.New(t)
	ctx := context.Background()

	pg := &connectors.Postgres{DSN: dsn, MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute}
	db := pg.Client(ctx)

	t.Cleanup(func() { pg.Close(ctx) })

	rq.NoError(MigrateFromFile(ctx, db, migrations...))

	if len(tables) > 0 {
		_, err := db.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", "))
		rq.NoError(err)
	}

	return db
}
