package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	owned "github.com/pumped-fn/owned-go"
)

func TestLifecycleLoggerLogsSharedLifecycle(t *testing.T) {
	zapCore, logs := observer.New(zap.InfoLevel)
	logger := NewLifecycleLogger(zap.New(zapCore))

	s := owned.NewShared("v",
		owned.WithLabel("watched"),
		owned.WithObserver(logger),
	)
	clone := s.Clone()
	require.NotNil(t, clone)
	require.NoError(t, s.Release())
	require.NoError(t, clone.Release())

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}

	assert.Equal(t, []string{
		"value came under ownership",
		"co-owner added",
		"owner released",
		"owner released",
		"value destroyed",
	}, messages)

	first := logs.All()[0].ContextMap()
	assert.Equal(t, "shared", first["kind"])
	assert.Equal(t, "watched", first["label"])
}

func TestLifecycleLoggerWarnsOnMissedDowncast(t *testing.T) {
	zapCore, logs := observer.New(zap.InfoLevel)
	logger := NewLifecycleLogger(zap.New(zapCore))

	base := owned.NewShared[any]("just a string", owned.WithObserver(logger))

	_, ok := owned.DowncastShared[int](base)
	require.False(t, ok)

	warnings := logs.FilterMessage("checked downcast missed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "int", warnings[0].ContextMap()["want"])

	require.NoError(t, base.Release())
}
