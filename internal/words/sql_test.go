package words_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/quordle/apps/go-solver/internal/storage"
	"github.com/robalobadob/quordle/apps/go-solver/internal/words"
)

func TestSQLRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "words.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, storage.Migrate(ctx, db))
	// Second run is a no-op.
	require.NoError(t, storage.Migrate(ctx, db))

	_, err = words.Load(ctx, words.SQL(db))
	assert.True(t, errors.Is(err, words.ErrEmpty))

	n, err := words.Replace(ctx, db, []string{"slant", "crane", "grape", "crane"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	v, err := words.Load(ctx, words.SQL(db))
	require.NoError(t, err)
	assert.Equal(t, []string{"slant", "crane", "grape"}, v.Words())

	// Replace drops the previous contents.
	_, err = words.Replace(ctx, db, []string{"trace"})
	require.NoError(t, err)
	v, err = words.Load(ctx, words.SQL(db))
	require.NoError(t, err)
	assert.Equal(t, []string{"trace"}, v.Words())
}

func TestSQLWithoutMigrations(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "bare.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = words.Load(context.Background(), words.SQL(db))
	var le *words.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "sqlite", le.Source)
}
