package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/habits-service/internal/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_InstallsGlobal(t *testing.T) {
	l, err := log.Init(false)
	require.NoError(t, err)
	assert.Same(t, l, log.L())
}

func TestWithDD_NoSpan(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log.WithDD(context.Background(), zap.New(core), zap.String("route", "/x")).Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/x", fields["route"])
	assert.NotContains(t, fields, "dd.trace_id")
}
