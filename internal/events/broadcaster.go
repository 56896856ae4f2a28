package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

// Broadcaster fans a change out to local hub subscribers and, through the
// bus, to subscribers on other instances. Remote events carrying our own
// instance id are skipped; the local hub already handled them.
type Broadcaster struct {
	hub        *watch.Hub
	bus        Bus
	instanceID string
	logger     zerolog.Logger
}

func NewBroadcaster(hub *watch.Hub, bus Bus, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:        hub,
		bus:        bus,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

// Start begins consuming remote events until ctx ends.
func (b *Broadcaster) Start(ctx context.Context) error {
	return b.bus.Consume(ctx, b.handleRemote)
}

// Broadcast announces a change to a user's collection. Publish failures
// are logged and swallowed; the write that triggered the change already
// succeeded and local subscribers are already up to date.
func (b *Broadcaster) Broadcast(ctx context.Context, collection, userID string) {
	b.hub.Notify(collection, userID)

	event := models.ChangeEvent{
		Collection: collection,
		UserID:     userID,
		InstanceID: b.instanceID,
		OccurredAt: time.Now().UTC(),
	}
	if err := b.bus.Publish(ctx, event); err != nil {
		b.logger.Error().Err(err).
			Str("collection", collection).
			Str("user_id", userID).
			Msg("Failed to publish change event")
	}
}

func (b *Broadcaster) handleRemote(event models.ChangeEvent) {
	if event.InstanceID == b.instanceID {
		return
	}
	b.hub.Notify(event.Collection, event.UserID)
}
