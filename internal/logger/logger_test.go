package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	l := New(&buf)
	require.Equal(t, logrus.InfoLevel, l.GetLevel())

	l.WithField("component", "test").Info("hello")
	require.Contains(t, buf.String(), `"component":"test"`)
}

func TestLevelOverride(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("LOG_LEVEL", "warn")
	require.Equal(t, logrus.WarnLevel, New(&bytes.Buffer{}).GetLevel())

	t.Setenv("LOG_LEVEL", "loud")
	require.Equal(t, logrus.DebugLevel, New(&bytes.Buffer{}).GetLevel())
}
