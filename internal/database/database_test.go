package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/novatech/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T, quota int) map[string]database.Client {
	dir := t.TempDir()
	clients := map[string]database.Client{
		"memory": database.NewMemory(quota),
	}

	for _, codec := range []string{"msgpack", "json", "cbor", "binc"} {
		filename := filepath.Join(dir, codec+".db")
		require.NoError(t, database.StormInit(filename, codec))

		db, err := database.StormOpen(filename, codec, quota)
		require.NoError(t, err)
		clients["storm-"+codec] = db
	}

	t.Cleanup(func() {
		for _, db := range clients {
			db.Close()
		}
	})
	return clients
}

func TestClient(t *testing.T) {
	for name, db := range backends(t, 0) {
		t.Run(name, func(t *testing.T) {
			_, err := db.Get("projects")
			assert.True(t, db.IsNotFound(err))

			assert.NoError(t, db.Set("projects", []byte(`[{"_id":"1"}]`)))
			assert.NoError(t, db.Set("leads", []byte(`[]`)))

			v, err := db.Get("projects")
			assert.NoError(t, err)
			assert.Equal(t, `[{"_id":"1"}]`, string(v))

			assert.NoError(t, db.Set("projects", []byte(`[]`)))
			v, err = db.Get("projects")
			assert.NoError(t, err)
			assert.Equal(t, `[]`, string(v))

			keys, err := db.Keys()
			assert.NoError(t, err)
			assert.Equal(t, []string{"leads", "projects"}, keys)

			assert.NoError(t, db.Remove("projects"))
			assert.NoError(t, db.Remove("projects"))
			_, err = db.Get("projects")
			assert.True(t, db.IsNotFound(err))
			assert.False(t, db.IsQuotaExceeded(err))
		})
	}
}

func TestClientQuota(t *testing.T) {
	for name, db := range backends(t, 256) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, db.Set("services", []byte(`["small"]`)))

			large := make([]byte, 512)
			err := db.Set("services", large)
			assert.True(t, db.IsQuotaExceeded(err))
			assert.False(t, db.IsNotFound(err))

			v, err := db.Get("services")
			assert.NoError(t, err)
			assert.Equal(t, `["small"]`, string(v), "previous value must be kept")
		})
	}
}

func TestStormPersistence(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "novatech.db")
	require.NoError(t, database.StormInit(filename, ""))

	db, err := database.StormOpen(filename, "", 0)
	require.NoError(t, err)
	assert.NoError(t, db.Set("adminToken", []byte("mock-jwt-token-xyz")))
	assert.NoError(t, db.Close())

	db, err = database.StormOpen(filename, "", 0)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.Get("adminToken")
	assert.NoError(t, err)
	assert.Equal(t, "mock-jwt-token-xyz", string(v))

	_, err = os.Stat(filename)
	assert.NoError(t, err)
}

func TestCodec(t *testing.T) {
	for _, name := range []string{"", "msgpack", "json", "cbor", "binc"} {
		_, err := database.Codec(name)
		assert.NoError(t, err, name)
	}

	_, err := database.Codec("gob")
	assert.EqualError(t, err, "unsupported database codec: gob")
}
