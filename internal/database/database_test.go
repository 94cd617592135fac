package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	db, err := NewDatabase(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	t.Run("migrates ledger tables", func(t *testing.T) {
		assert.True(t, db.DB.Migrator().HasTable(&entities.ImportRun{}))
		assert.True(t, db.DB.Migrator().HasTable(&entities.EntryOutcome{}))
	})

	t.Run("round trips a run", func(t *testing.T) {
		run := &entities.ImportRun{
			RunID:     "4b1c3a52-5e0e-4f43-9a57-2f6c1f4cc8f1",
			Journal:   "Journey",
			Status:    entities.RunStatusRunning,
			StartedAt: time.Now(),
		}
		require.NoError(t, db.DB.Create(run).Error)

		var loaded entities.ImportRun
		require.NoError(t, db.DB.Where("run_id = ?", run.RunID).First(&loaded).Error)
		assert.Equal(t, "Journey", loaded.Journal)
	})

	t.Run("reopening keeps data", func(t *testing.T) {
		require.NoError(t, db.Close())

		reopened, err := NewDatabase(dbPath, nil)
		require.NoError(t, err)
		defer reopened.Close()

		var count int64
		require.NoError(t, reopened.DB.Model(&entities.ImportRun{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestNewDatabaseInvalidPath(t *testing.T) {
	_, err := NewDatabase(filepath.Join(t.TempDir(), "missing", "dir", "ledger.db"), nil)
	assert.Error(t, err)
}
