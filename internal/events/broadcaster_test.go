package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

type captureBus struct {
	mu        sync.Mutex
	published []models.ChangeEvent
	handler   func(models.ChangeEvent)
}

func (b *captureBus) Publish(ctx context.Context, event models.ChangeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Consume(ctx context.Context, handler func(models.ChangeEvent)) error {
	b.handler = handler
	return nil
}

func (b *captureBus) Close() error { return nil }

func (b *captureBus) last() models.ChangeEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published[len(b.published)-1]
}

func subscribed(t *testing.T, hub *watch.Hub, userID string) <-chan watch.Snapshot {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ch, err := hub.Subscribe(ctx, watch.Key{Collection: watch.CollectionSubjects, UserID: userID})
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	// Drain the initial snapshot.
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}
	return ch
}

func TestBroadcastPublishesAndNotifies(t *testing.T) {
	hub := watch.NewHub(zerolog.Nop())
	hub.RegisterLoader(watch.CollectionSubjects, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return "snapshot", nil
	})

	bus := &captureBus{}
	broadcaster := NewBroadcaster(hub, bus, zerolog.Nop())

	ch := subscribed(t, hub, "u1")

	broadcaster.Broadcast(context.Background(), watch.CollectionSubjects, "u1")

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("local subscriber did not receive the change")
	}

	event := bus.last()
	if event.Collection != watch.CollectionSubjects || event.UserID != "u1" {
		t.Errorf("published %s/%s, want subjects/u1", event.Collection, event.UserID)
	}
	if event.InstanceID == "" {
		t.Error("published event must carry the instance id")
	}
}

func TestRemoteEventsSkipOwnInstance(t *testing.T) {
	hub := watch.NewHub(zerolog.Nop())
	hub.RegisterLoader(watch.CollectionSubjects, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return "snapshot", nil
	})

	bus := &captureBus{}
	broadcaster := NewBroadcaster(hub, bus, zerolog.Nop())
	if err := broadcaster.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	ch := subscribed(t, hub, "u1")

	// Find our own instance id by publishing once.
	broadcaster.Broadcast(context.Background(), watch.CollectionSubjects, "u1")
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out on local broadcast")
	}
	ownID := bus.last().InstanceID

	bus.handler(models.ChangeEvent{
		Collection: watch.CollectionSubjects,
		UserID:     "u1",
		InstanceID: ownID,
	})
	select {
	case <-ch:
		t.Fatal("own remote event must be skipped")
	case <-time.After(100 * time.Millisecond):
	}

	bus.handler(models.ChangeEvent{
		Collection: watch.CollectionSubjects,
		UserID:     "u1",
		InstanceID: "some-other-instance",
	})
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("foreign remote event should reach local subscribers")
	}
}
