package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mtslabs/mts/internal/cache"
	"github.com/mtslabs/mts/internal/compress"
	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/queue"
	"github.com/mtslabs/mts/internal/store"
)

// RecordInput is one line of snapshot content supplied by a client.
type RecordInput struct {
	Sq      int32  `json:"sq"`
	Content string `json:"content"`
}

// NewCommitService creates a new CommitService.
func NewCommitService(compress compress.Compress, store store.Store, cache cache.CommitCache, queue queue.CommitQueue) *CommitService {
	return &CommitService{
		compress: compress,
		store:    store,
		cache:    cache,
		queue:    queue,
	}
}

// CommitService creates and serves immutable unit snapshots. Record content
// is compressed with the configured codec and stored base64-encoded; the
// codec name travels on the commit row so old snapshots stay readable after
// the default changes.
type CommitService struct {
	compress compress.Compress
	store    store.Store
	cache    cache.CommitCache
	queue    queue.CommitQueue
}

// CreateCommit snapshots the given records as a new commit of the unit. The
// unit's latest-commit pointer moves to the new commit in the same
// transaction as the insert.
func (c *CommitService) CreateCommit(ctx context.Context, unitID uuid.UUID, records []RecordInput) (*model.Commit, error) {
	rows := make([]*model.Record, 0, len(records))
	seen := make(map[int32]struct{}, len(records))

	for _, record := range records {
		if record.Sq < 0 {
			return nil, ErrNegativeSq
		}
		if _, ok := seen[record.Sq]; ok {
			return nil, ErrDuplicateSq
		}
		seen[record.Sq] = struct{}{}

		content, err := compress.EncodeString(c.compress, []byte(record.Content))
		if err != nil {
			return nil, err
		}

		rows = append(rows, &model.Record{
			Sq:      record.Sq,
			Content: content,
		})
	}

	commit := &model.Commit{
		ID:          uuid.New(),
		UnitID:      unitID,
		CreatedAt:   time.Now().UTC(),
		Compression: c.compress.Name(),
	}

	if err := c.store.CreateCommit(ctx, commit, rows); err != nil {
		return nil, err
	}

	// cache and queue failures must not undo a committed snapshot
	if err := c.cache.SetLatestCommit(ctx, commit); err != nil {
		logrus.Errorf("failed to cache latest commit %s: %v", commit.ID, err)
	}

	err := c.queue.PublishCommit(ctx, &queue.CommitEvent{
		CommitID:  commit.ID,
		UnitID:    commit.UnitID,
		CreatedAt: commit.CreatedAt,
		Records:   len(rows),
	})
	if err != nil {
		logrus.Errorf("failed to publish commit event %s: %v", commit.ID, err)
	}

	return commit, nil
}

// SnapshotUnit commits the unit's current source rows as they stand.
func (c *CommitService) SnapshotUnit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error) {
	sources, err := c.store.ListSources(ctx, unitID)
	if err != nil {
		return nil, err
	}

	records := make([]RecordInput, 0, len(sources))
	for _, source := range sources {
		records = append(records, RecordInput{
			Sq:      source.Sq,
			Content: source.Content,
		})
	}

	return c.CreateCommit(ctx, unitID, records)
}

// GetCommit retrieves a commit by id.
func (c *CommitService) GetCommit(ctx context.Context, id uuid.UUID) (*model.Commit, error) {
	return c.store.GetCommit(ctx, id)
}

// ListCommits retrieves the commits of a unit ordered by creation time.
func (c *CommitService) ListCommits(ctx context.Context, unitID uuid.UUID) ([]*model.Commit, error) {
	return c.store.ListCommits(ctx, unitID)
}

// ListRecords retrieves the records of a commit with content decoded.
func (c *CommitService) ListRecords(ctx context.Context, commitID uuid.UUID) ([]*model.Record, error) {
	commit, err := c.store.GetCommit(ctx, commitID)
	if err != nil {
		return nil, err
	}

	codec, err := compress.FromName(commit.Compression)
	if err != nil {
		return nil, err
	}

	records, err := c.store.ListRecords(ctx, commitID)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		content, err := compress.DecodeString(codec, record.Content)
		if err != nil {
			return nil, err
		}
		record.Content = string(content)
	}

	return records, nil
}

// LatestCommit retrieves the most recent commit of a unit, from the cache
// when warm.
func (c *CommitService) LatestCommit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error) {
	commit, err := c.cache.GetLatestCommit(ctx, unitID)
	if err != nil {
		logrus.Errorf("latest commit cache lookup failed for unit %s: %v", unitID, err)
	}
	if commit != nil {
		return commit, nil
	}

	commit, err = c.store.GetLatestCommit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if cerr := c.cache.SetLatestCommit(ctx, commit); cerr != nil && !errors.Is(cerr, context.Canceled) {
		logrus.Errorf("failed to cache latest commit %s: %v", commit.ID, cerr)
	}

	return commit, nil
}
