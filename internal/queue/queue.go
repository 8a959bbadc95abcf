package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommitEvent announces that a unit gained a new commit. Downstream consumers
// (indexers, notifiers) subscribe to these instead of polling the database.
type CommitEvent struct {
	CommitID  uuid.UUID `json:"commitId"`
	UnitID    uuid.UUID `json:"unitId"`
	CreatedAt time.Time `json:"createdAt"`
	Records   int       `json:"records"`
}

// CommitQueue publishes commit events.
type CommitQueue interface {
	// PublishCommit appends a commit event to the queue.
	PublishCommit(ctx context.Context, event *CommitEvent) error
	// Close flushes pending events and releases the transport.
	Close() error
}

var _ CommitQueue = (*NopCommitQueue)(nil)

// NopCommitQueue drops events. Used when no broker is configured.
type NopCommitQueue struct {
}

func NewNopCommitQueue() *NopCommitQueue {
	return &NopCommitQueue{}
}

func (n *NopCommitQueue) PublishCommit(ctx context.Context, event *CommitEvent) error {
	return nil
}

func (n *NopCommitQueue) Close() error {
	return nil
}
