package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/behnamfe76/user-service/internal/events"
)

// DefaultQueueSize bounds how many user events may wait for delivery.
const DefaultQueueSize = 64

// Notifier delivers one event to the outside world.
type Notifier interface {
	Notify(ctx context.Context, event events.Event) error
}

// NotificationWorker moves user events off the request path and hands them to a Notifier.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event
	done     chan struct{}
}

var notifiedEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventUserUpdated,
	events.EventUserDeleted,
}

// NewNotificationWorker creates a worker with a queue of size slots.
func NewNotificationWorker(notifier Notifier, logger *zap.Logger, size int) *NotificationWorker {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, size),
		done:     make(chan struct{}),
	}
}

// Subscribe registers the worker for every user lifecycle event on d.
func (w *NotificationWorker) Subscribe(d events.Dispatcher) {
	for _, eventType := range notifiedEvents {
		d.Subscribe(eventType, w.enqueue)
	}
}

// Start processes queued events until ctx is cancelled, then drains what is left.
func (w *NotificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Wait blocks until the worker started by Start has drained its queue.
func (w *NotificationWorker) Wait() {
	<-w.done
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		return fmt.Errorf("notification queue full, dropped %s event %s", event.Type, event.ID)
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case event := <-w.queue:
			w.deliver(ctx, event)
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (w *NotificationWorker) drain(ctx context.Context) {
	for {
		select {
		case event := <-w.queue:
			w.deliver(ctx, event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.notifier.Notify(ctx, event); err != nil {
		w.logger.Warn("notification failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
