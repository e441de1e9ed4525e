package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdouchement/novatech/internal/config"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "novatech.yml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))
	return filename
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(write(t, "database_path: /var/lib/novatech\n"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:5000", cfg.Address)
	assert.Equal(t, "msgpack", cfg.DatabaseCodec)
	assert.Equal(t, "/var/lib/novatech/novatech.db", cfg.Database())
	assert.Equal(t, store.DefaultLatency, cfg.Latency)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Nil(t, cfg.SigningKey())
	assert.Empty(t, cfg.Credentials.Email)
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(write(t, `
address: 0.0.0.0:8080
database_codec: cbor
storage_quota: 5242880
latency: 0s
admin:
  email: admin@novatech.lan
  password_hash: $argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA
session:
  secret: yolo
  token_ttl: 1h
log:
  level: debug
  file: novatech.log
  max_size: 5
`))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, "cbor", cfg.DatabaseCodec)
	assert.Equal(t, "novatech.db", cfg.Database())
	assert.Equal(t, 5242880, cfg.StorageQuota)
	assert.Zero(t, cfg.Latency)
	assert.Equal(t, "admin@novatech.lan", cfg.Credentials.Email)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxSize)

	key := cfg.SigningKey()
	assert.Len(t, key, 32)
	assert.Equal(t, key, cfg.SigningKey(), "key derivation must be deterministic")
	assert.NotEqual(t, []byte("yolo"), key)
}

func TestLoadInvalid(t *testing.T) {
	var tests = []struct {
		content string
		err     string
	}{
		{content: "storage_quota: -1\n", err: "storage_quota must be positive"},
		{content: "latency: -1s\n", err: "latency must be positive"},
		{content: "database_codec: gob\n", err: "unsupported database codec: gob"},
		{content: "admin:\n  email: admin@novatech.lan\n", err: "admin.password_hash is required with admin.email"},
	}

	for _, test := range tests {
		_, err := config.Load(write(t, test.content))
		assert.EqualError(t, err, test.err)
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
