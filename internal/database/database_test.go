package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T, backend Backend) Store {
	t.Helper()

	db, err := Open(backend, filepath.Join(t.TempDir(), "test.storage"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return db
}

var backends = []Backend{BackendBolt, BackendSQLite, BackendMemory}

func TestStore_Ping(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			db := setupTestDB(t, backend)

			assert.NoError(t, db.Ping())
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			db := setupTestDB(t, backend)

			_, err := db.Get("document")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_PutGet(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			db := setupTestDB(t, backend)

			require.NoError(t, db.Put("document", []byte(`{"a":1}`)))

			got, err := db.Get("document")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got))

			// Whole value overwrite
			require.NoError(t, db.Put("document", []byte(`{"b":2}`)))

			got, err = db.Get("document")
			require.NoError(t, err)
			assert.Equal(t, `{"b":2}`, string(got))
		})
	}
}

func TestStore_Keys(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			db := setupTestDB(t, backend)

			require.NoError(t, db.Put("b", []byte("2")))
			require.NoError(t, db.Put("a", []byte("1")))

			keys, err := db.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)
		})
	}
}

func TestBolt_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bolt")

	db, err := NewBolt(path)
	require.NoError(t, err)
	require.NoError(t, db.Put("document", []byte("persisted")))
	require.NoError(t, db.Close())

	db, err = NewBolt(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	got, err := db.Get("document")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("redis", "/tmp/x")
	assert.Error(t, err)

	_, err = Open(BackendBolt, "")
	assert.Error(t, err)
}
