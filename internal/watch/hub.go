package watch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Collections that can be watched.
const (
	CollectionSubjects          = "subjects"
	CollectionAssignments       = "assignments"
	CollectionStudyMaterials    = "studyMaterials"
	CollectionTimetableEntries  = "timetableEntries"
	CollectionTimetableSettings = "userTimetableSettings"
	CollectionUserStats         = "userStats"
	CollectionProfiles          = "users"
)

var ErrUnknownCollection = errors.New("unknown collection")

// Key identifies one scoped live query: a collection filtered to a user.
// Filter carries the entity-specific refinement (subjectId or timetable
// type) and is part of the loader input, not the fan-out key: a change
// anywhere in (collection, user) reloads every refinement of it.
type Key struct {
	Collection string
	UserID     string
	Filter     string
}

// Snapshot is the full latest state of a scoped query. There is no
// incremental diffing; every change replaces the whole view.
type Snapshot struct {
	Collection string      `json:"collection"`
	UserID     string      `json:"userId"`
	Data       interface{} `json:"data"`
}

// Loader produces the current snapshot data for a key.
type Loader func(ctx context.Context, key Key) (interface{}, error)

type subscriber struct {
	key Key
	ch  chan Snapshot
}

// send delivers latest-wins: a slow consumer loses intermediate snapshots
// instead of blocking the hub.
func (s *subscriber) send(snap Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Hub tracks live subscriptions and pushes a freshly loaded snapshot to
// every matching subscriber whenever a collection changes for a user.
type Hub struct {
	mu          sync.RWMutex
	loaders     map[string]Loader
	subscribers map[*subscriber]struct{}
	loadTimeout time.Duration
	logger      zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		loaders:     make(map[string]Loader),
		subscribers: make(map[*subscriber]struct{}),
		loadTimeout: 10 * time.Second,
		logger:      logger,
	}
}

func (h *Hub) RegisterLoader(collection string, loader Loader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaders[collection] = loader
}

// Subscribe opens a standing subscription for the key. The first snapshot
// is delivered immediately; the channel is closed when ctx ends. Releasing
// the subscription with the owning request is mandatory, otherwise the hub
// would keep fanning out to a dead consumer.
func (h *Hub) Subscribe(ctx context.Context, key Key) (<-chan Snapshot, error) {
	h.mu.RLock()
	loader, ok := h.loaders[key.Collection]
	h.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownCollection
	}

	sub := &subscriber{
		key: key,
		ch:  make(chan Snapshot, 1),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subscribers, sub)
		close(sub.ch)
		h.mu.Unlock()
	}()

	// Initial snapshot. A load error still produces an (empty) snapshot so
	// the consumer leaves its loading state; the error is logged, not fatal.
	go func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), h.loadTimeout)
		defer cancel()

		data, err := loader(loadCtx, key)
		if err != nil {
			h.logger.Error().Err(err).
				Str("collection", key.Collection).
				Str("user_id", key.UserID).
				Msg("Failed to load initial snapshot")
		}

		h.mu.RLock()
		defer h.mu.RUnlock()
		if _, alive := h.subscribers[sub]; alive {
			sub.send(Snapshot{Collection: key.Collection, UserID: key.UserID, Data: data})
		}
	}()

	return sub.ch, nil
}

// Notify reloads and fans out every subscription matching the changed
// (collection, user). Runs asynchronously; callers never block on
// subscriber delivery.
func (h *Hub) Notify(collection, userID string) {
	h.mu.RLock()
	var matched []*subscriber
	for sub := range h.subscribers {
		if sub.key.Collection == collection && sub.key.UserID == userID {
			matched = append(matched, sub)
		}
	}
	loader := h.loaders[collection]
	h.mu.RUnlock()

	if len(matched) == 0 || loader == nil {
		return
	}

	go func() {
		// One load per distinct filter, shared across its subscribers.
		byFilter := make(map[string][]*subscriber)
		for _, sub := range matched {
			byFilter[sub.key.Filter] = append(byFilter[sub.key.Filter], sub)
		}

		for filter, subs := range byFilter {
			loadCtx, cancel := context.WithTimeout(context.Background(), h.loadTimeout)
			data, err := loader(loadCtx, Key{Collection: collection, UserID: userID, Filter: filter})
			cancel()
			if err != nil {
				// Subscribers keep their previous snapshot.
				h.logger.Error().Err(err).
					Str("collection", collection).
					Str("user_id", userID).
					Msg("Failed to reload snapshot")
				continue
			}

			snap := Snapshot{Collection: collection, UserID: userID, Data: data}
			h.mu.RLock()
			for _, sub := range subs {
				if _, alive := h.subscribers[sub]; alive {
					sub.send(snap)
				}
			}
			h.mu.RUnlock()
		}
	}()
}

// SubscriberCount reports the number of live subscriptions, for health
// introspection and tests.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
