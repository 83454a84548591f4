package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_Publish(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		return errors.New("webhook down")
	})
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected handler call")
		return nil
	})

	event := NewEvent(EventUserRegistered, 1, nil, UserRegisteredPayload{Username: "alice", Email: "alice@example.com"})
	err := d.Publish(context.Background(), event)

	assert.ErrorContains(t, err, "webhook down")
	require.Len(t, got, 1)
	assert.Equal(t, event.ID, got[0].ID)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestInMemoryDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventUserUpdated, 1, nil, nil)))
}

func TestInMemoryDispatcher_RecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		panic("boom")
	})
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserDeleted, 3, nil, nil))
	assert.ErrorContains(t, err, "user_deleted handler 0: panic: boom")
	assert.True(t, called)
}
