package postgres

import (
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"portfolio-complete/core"
	"portfolio-complete/stores/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) Config {
	return Config{
		URL:             url,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnTimeout:     5 * time.Second,
	}
}

// resetTable recreates the portfolio table with the given DDL, or drops it
// when ddl is empty. Runs only when POSTGRES_TEST_URL is set.
func resetTable(t *testing.T, ddl string) string {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS portfolio")
	require.NoError(t, err)
	if ddl != "" {
		_, err = db.ExecContext(ctx, ddl)
		require.NoError(t, err)
	}
	return url
}

func newStore(t *testing.T, url string) core.DocumentStore {
	store, err := NewDocumentStore(testConfig(url))
	require.NoError(t, err)
	_, err = store.(*documentStore).db.ExecContext(context.Background(), "DELETE FROM portfolio")
	require.NoError(t, err)
	t.Cleanup(func() { store.(io.Closer).Close() })
	return store
}

func TestDocumentStore(t *testing.T) {
	url := resetTable(t, "")

	storetest.Run(t, func(t *testing.T) core.DocumentStore {
		return newStore(t, url)
	})
}

// Tables provisioned outside this service only have a data column.
func TestDocumentStoreProvisionedTable(t *testing.T) {
	url := resetTable(t, "CREATE TABLE portfolio (data JSONB)")
	defer resetTable(t, "")

	storetest.Run(t, func(t *testing.T) core.DocumentStore {
		return newStore(t, url)
	})
}

func TestReplaceProvisionedRowKeepsSingleRow(t *testing.T) {
	url := resetTable(t, "CREATE TABLE portfolio (data JSONB)")
	defer resetTable(t, "")

	store, err := NewDocumentStore(testConfig(url))
	require.NoError(t, err)
	defer store.(io.Closer).Close()
	db := store.(*documentStore).db
	ctx := context.Background()

	_, err = db.ExecContext(ctx, `INSERT INTO portfolio (data) VALUES ('{"name":"seeded"}')`)
	require.NoError(t, err)

	require.NoError(t, store.Replace(ctx, storetest.Sample()))
	require.NoError(t, store.Replace(ctx, storetest.Minimal()))

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM portfolio").Scan(&rows))
	require.Equal(t, 1, rows)

	got, err := store.Find(ctx)
	require.NoError(t, err)
	require.Equal(t, storetest.Minimal(), got)
}

func TestConcurrentReplaceOnEmptyProvisionedTable(t *testing.T) {
	url := resetTable(t, "CREATE TABLE portfolio (data JSONB)")
	defer resetTable(t, "")

	store, err := NewDocumentStore(testConfig(url))
	require.NoError(t, err)
	defer store.(io.Closer).Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Replace(ctx, storetest.Sample()))
		}()
	}
	wg.Wait()

	var rows int
	require.NoError(t, store.(*documentStore).db.QueryRowContext(ctx, "SELECT COUNT(*) FROM portfolio").Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestNewDocumentStoreUnreachable(t *testing.T) {
	_, err := NewDocumentStore(Config{
		URL:         "postgres://nobody@127.0.0.1:1/portfolio?sslmode=disable",
		ConnTimeout: time.Second,
	})
	require.Error(t, err)
}
