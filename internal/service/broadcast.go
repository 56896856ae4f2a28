package service

import "context"

// ChangeBroadcaster announces that a user's collection changed so live
// subscribers reload their snapshots. Satisfied by events.Broadcaster.
type ChangeBroadcaster interface {
	Broadcast(ctx context.Context, collection, userID string)
}
