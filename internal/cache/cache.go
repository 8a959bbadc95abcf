package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/mtslabs/mts/internal/model"
)

// CommitCache keeps the latest commit of a unit close to the server so the
// hot latest-commit lookup skips the database. A miss is reported as
// (nil, nil), not as an error.
type CommitCache interface {
	// GetLatestCommit gets the cached latest commit of a unit.
	GetLatestCommit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error)
	// SetLatestCommit caches the latest commit of a unit.
	SetLatestCommit(ctx context.Context, commit *model.Commit) error
	// DeleteLatestCommit drops the cached entry of a unit.
	DeleteLatestCommit(ctx context.Context, unitID uuid.UUID) error
}

var _ CommitCache = (*NopCommitCache)(nil)

// NopCommitCache is used when no cache backend is configured. Every lookup
// is a miss.
type NopCommitCache struct {
}

func NewNopCommitCache() *NopCommitCache {
	return &NopCommitCache{}
}

func (n *NopCommitCache) GetLatestCommit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error) {
	return nil, nil
}

func (n *NopCommitCache) SetLatestCommit(ctx context.Context, commit *model.Commit) error {
	return nil
}

func (n *NopCommitCache) DeleteLatestCommit(ctx context.Context, unitID uuid.UUID) error {
	return nil
}
