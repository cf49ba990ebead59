package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"portfolio-complete/core"
	"portfolio-complete/stores/storetest"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, dsn string) core.DocumentStore {
	store, err := NewDocumentStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.(io.Closer).Close() })
	return store
}

func TestDocumentStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.DocumentStore {
		return newStore(t, filepath.Join(t.TempDir(), "portfolio.db"))
	})
}

func TestReplaceKeepsSingleRow(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "portfolio.db"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Replace(ctx, storetest.Sample()))
	}

	var rows int
	db := store.(*documentStore).db
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM portfolio").Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestDocumentSurvivesReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "portfolio.db")
	first, err := NewDocumentStore(dsn)
	require.NoError(t, err)
	require.NoError(t, first.Replace(context.Background(), storetest.Sample()))
	require.NoError(t, first.(io.Closer).Close())

	second := newStore(t, dsn)
	got, err := second.Find(context.Background())
	require.NoError(t, err)
	require.Equal(t, storetest.Sample(), got)
}
