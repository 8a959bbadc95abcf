package job

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/store"
)

// CommitRetention thins out dense commit history. Within each retention
// window a unit keeps its newest commit; a unit's most recent commit overall
// is never deleted, so the unit.commit_id pointer stays valid.
type CommitRetention struct {
	store    store.Store
	window   time.Duration
	schedule string
}

// NewCommitRetention creates a new CommitRetention instance.
func NewCommitRetention(store store.Store, window time.Duration, schedule string) *CommitRetention {
	return &CommitRetention{
		store:    store,
		window:   window,
		schedule: schedule,
	}
}

func (c *CommitRetention) Schedule() string {
	return c.schedule
}

func (c *CommitRetention) Run() {
	c.prune(time.Now().UTC())
}

func (c *CommitRetention) prune(now time.Time) {
	ctx := context.Background()

	// look back two windows so a commit gets one full window of grace
	commits, err := c.store.ListCommitsByAge(ctx, now.Add(-2*c.window), now.Add(-c.window))
	if err != nil {
		logrus.Errorf("retention: failed to list commits: %v", err)
		return
	}

	perUnit := make(map[uuid.UUID][]*model.Commit)
	for _, commit := range commits {
		perUnit[commit.UnitID] = append(perUnit[commit.UnitID], commit)
	}

	remove := mapset.NewSet[uuid.UUID]()
	for _, unitCommits := range perUnit {
		// rows arrive ordered by created_at, the last one is the unit's
		// newest in range and always survives
		var bucket time.Time
		for i := len(unitCommits) - 1; i >= 0; i-- {
			commit := unitCommits[i]
			if i == len(unitCommits)-1 {
				bucket = commit.CreatedAt.Round(c.window)
				continue
			}

			commitBucket := commit.CreatedAt.Round(c.window)
			if commitBucket.Equal(bucket) {
				remove.Add(commit.ID)
			} else {
				bucket = commitBucket
			}
		}
	}

	if remove.Cardinality() == 0 {
		return
	}

	if err := c.store.DeleteCommits(ctx, remove.ToSlice()); err != nil {
		logrus.Errorf("retention: failed to delete commits: %v", err)
		return
	}

	logrus.Infof("retention: removed %d commits", remove.Cardinality())
}
