package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/behnamfe76/user-service/internal/config"
	"github.com/behnamfe76/user-service/internal/events"
)

func TestNotificationService_Notify(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewNotificationService(zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com/users",
	})
	ctx := context.Background()

	require.NoError(t, svc.Notify(ctx, events.NewEvent(events.EventUserRegistered, 7, nil, nil)))
	assert.Equal(t, 1, logs.FilterMessage("email notification").Len())
	assert.Equal(t, 1, logs.FilterMessage("webhook notification").Len())

	require.NoError(t, svc.Notify(ctx, events.NewEvent(events.EventUserDeleted, 7, nil, nil)))
	assert.Equal(t, 1, logs.FilterMessage("email notification").Len())
	assert.Equal(t, 2, logs.FilterMessage("webhook notification").Len())

	require.NoError(t, svc.Notify(ctx, events.NewEvent("unknown", 7, nil, nil)))
	assert.Equal(t, 2, logs.FilterMessage("webhook notification").Len())
}

func TestNotificationService_SkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewNotificationService(zap.New(core), config.NotificationConfig{})

	require.NoError(t, svc.Notify(context.Background(), events.NewEvent(events.EventUserRegistered, 1, nil, nil)))
	assert.Zero(t, logs.FilterMessage("email notification").Len())
	assert.Zero(t, logs.FilterMessage("webhook notification").Len())
}
