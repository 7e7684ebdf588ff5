package ringlog

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingLogKeepsMostRecentEntries(t *testing.T) {
	ring := New(3)

	log := logrus.New()
	log.AddHook(ring)
	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(io.Discard)

	log.Info("one")
	log.Info("two")

	entries := ring.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Message)
	assert.Equal(t, "two", entries[1].Message)

	log.Warn("three")
	log.Error("four")

	entries = ring.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "two", entries[0].Message)
	assert.Equal(t, "three", entries[1].Message)
	assert.Equal(t, "four", entries[2].Message)
	assert.Equal(t, "error", entries[2].Level)
}

func TestRingLogEmpty(t *testing.T) {
	ring := New(4)

	assert.Empty(t, ring.Entries())
}
