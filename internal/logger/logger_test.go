package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "corrupted collection",
		Data:    logrus.Fields{"key": "projects", "error": "unexpected EOF"},
	}

	line, err := new(Formatter).Format(entry)
	assert.NoError(t, err)
	assert.Equal(t, "[2026-10-18T09:30:00Z] WARNING: corrupted collection (error=unexpected EOF, key=projects)\n", string(line))
}

func TestNew(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "novatech.log")
	log, err := New(Config{Level: "debug", File: filename, Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("collection", "leads").Debug("lead submitted")

	data, err := os.ReadFile(filename)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG: lead submitted (collection=leads)")
}

func TestFileHook(t *testing.T) {
	var buf bytes.Buffer
	hook := &fileHook{rotate: &buf, formatter: new(Formatter)}

	err := hook.Fire(&logrus.Entry{Level: logrus.InfoLevel, Message: "hello"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), " INFO: hello\n")
	assert.Len(t, hook.Levels(), len(logrus.AllLevels))
}
