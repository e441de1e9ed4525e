package config

import (
	"hash"
	"io"
	"path/filepath"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/logger"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

// DatabaseName is the filename of the database in database_path.
const DatabaseName = "novatech.db"

// A Config holds the server settings.
type Config struct {
	Address       string
	DatabasePath  string
	DatabaseCodec string
	StorageQuota  int
	Latency       time.Duration
	Credentials   store.Credentials
	SessionSecret []byte
	TokenTTL      time.Duration
	Log           logger.Config
}

// Load reads the given YAML configuration file.
func Load(filename string) (*Config, error) {
	konf := koanf.New(".")
	if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "could not load configuration")
	}

	cfg := &Config{
		Address:       konf.String("address"),
		DatabasePath:  konf.String("database_path"),
		DatabaseCodec: konf.String("database_codec"),
		StorageQuota:  konf.Int("storage_quota"),
		Latency:       store.DefaultLatency,
		Credentials: store.Credentials{
			Email:        konf.String("admin.email"),
			PasswordHash: konf.String("admin.password_hash"),
		},
		SessionSecret: konf.Bytes("session.secret"),
		TokenTTL:      24 * time.Hour,
		Log: logger.Config{
			Level:      konf.String("log.level"),
			File:       konf.String("log.file"),
			MaxSize:    konf.Int("log.max_size"),
			MaxBackups: konf.Int("log.max_backups"),
			MaxAge:     konf.Int("log.max_age"),
		},
	}

	if cfg.Address == "" {
		cfg.Address = "localhost:5000"
	}
	if cfg.DatabaseCodec == "" {
		cfg.DatabaseCodec = database.DefaultCodec
	}
	if konf.Exists("latency") {
		cfg.Latency = konf.Duration("latency")
	}
	if konf.Exists("session.token_ttl") {
		cfg.TokenTTL = konf.Duration("session.token_ttl")
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.StorageQuota < 0 {
		return errors.New("storage_quota must be positive")
	}
	if c.Latency < 0 {
		return errors.New("latency must be positive")
	}
	if c.Credentials.PasswordHash != "" && c.Credentials.Email == "" {
		return errors.New("admin.email is required with admin.password_hash")
	}
	if c.Credentials.Email != "" && c.Credentials.PasswordHash == "" {
		return errors.New("admin.password_hash is required with admin.email")
	}
	if _, err := database.Codec(c.DatabaseCodec); err != nil {
		return err
	}
	return nil
}

// Database returns the database filename.
func (c *Config) Database() string {
	if len(c.DatabasePath) == 0 {
		return DatabaseName
	}
	return filepath.Join(c.DatabasePath, DatabaseName)
}

// SigningKey returns the JWT signing key derived from the session secret.
// It is nil when no secret is configured.
func (c *Config) SigningKey() []byte {
	if len(c.SessionSecret) == 0 {
		return nil
	}
	return kdf(32, c.SessionSecret)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}
