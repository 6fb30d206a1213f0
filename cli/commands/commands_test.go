package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seistech/nshmdb/nshmdb"
)

func TestDatabasePathPrefersExplicitArgument(t *testing.T) {
	t.Setenv("NSHMDB_DATABASE_PATH", "configured.db")

	path, err := databasePath("explicit.db")
	require.NoError(t, err)
	assert.Equal(t, "explicit.db", path)
}

func TestDatabasePathFallsBackToConfig(t *testing.T) {
	t.Setenv("NSHMDB_DATABASE_PATH", "configured.db")

	path, err := databasePath("")
	require.NoError(t, err)
	assert.Equal(t, "configured.db", path)
}

func TestQueryCommandWithoutDatabaseArgument(t *testing.T) {
	t.Setenv("NSHMDB_DATABASE_PATH", filepath.Join(t.TempDir(), "nshm.db"))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"query", "--sql-only", "Alpine Fault & Wairau"})
	require.NoError(t, cmd.Execute())
}

func TestFaultsCommandUsesConfiguredDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nshm.db")

	db, err := nshmdb.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Create(ctx))
	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, db.AddParentFault(ctx, tx, 1, "Alpine Fault"))
	require.NoError(t, tx.Commit())
	require.NoError(t, db.Close())

	t.Setenv("NSHMDB_DATABASE_PATH", dbPath)
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"faults"})
	require.NoError(t, cmd.Execute())
}
