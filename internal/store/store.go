package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mtslabs/mts/internal/model"
)

type Store interface {
	ProjectStore
	UnitStore
	CommitStore
	UserStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type ProjectStore interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, project *model.Project) error
	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	// ListProjects retrieves all projects ordered by name.
	ListProjects(ctx context.Context) ([]*model.Project, error)
	// DeleteProject deletes a project by ID. Fails with ErrForeignKey while
	// the project still owns units.
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

// UnitListing is a unit row joined with the creation time of its most recent
// commit. UpdatedAt is nil for units that were never committed.
type UnitListing struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"projectId"`
	Title     string     `json:"title"`
	CommitID  *uuid.UUID `json:"commitId,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type UnitStore interface {
	// CreateUnit creates a unit together with its initial source rows in one
	// transaction.
	CreateUnit(ctx context.Context, unit *model.Unit, sources []*model.Source) error
	// GetUnit retrieves a unit by ID.
	GetUnit(ctx context.Context, id uuid.UUID) (*model.Unit, error)
	// ListUnits retrieves the units of a project ordered by title, each with
	// the timestamp of its latest commit.
	ListUnits(ctx context.Context, projectID uuid.UUID) ([]*UnitListing, error)
	// ListSources retrieves the source rows of a unit ordered by sq.
	ListSources(ctx context.Context, unitID uuid.UUID) ([]*model.Source, error)
	// ReplaceSources swaps the working content of a unit for the given rows
	// in one transaction.
	ReplaceSources(ctx context.Context, unitID uuid.UUID, sources []*model.Source) error
	// DeleteUnit deletes a unit and its source rows. Fails with ErrForeignKey
	// while commits reference the unit.
	DeleteUnit(ctx context.Context, id uuid.UUID) error
}

type CommitStore interface {
	// CreateCommit inserts the commit and its records and moves the owning
	// unit's latest-commit pointer to the new commit, all in one transaction.
	CreateCommit(ctx context.Context, commit *model.Commit, records []*model.Record) error
	// GetCommit retrieves a commit by ID.
	GetCommit(ctx context.Context, id uuid.UUID) (*model.Commit, error)
	// ListCommits retrieves the commits of a unit ordered by creation time.
	ListCommits(ctx context.Context, unitID uuid.UUID) ([]*model.Commit, error)
	// ListRecords retrieves the records of a commit ordered by sq.
	ListRecords(ctx context.Context, commitID uuid.UUID) ([]*model.Record, error)
	// GetLatestCommit retrieves the most recent commit of a unit.
	GetLatestCommit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error)
	// ListCommitsByAge retrieves commits created inside [since, until) ordered
	// by unit and creation time. Used by the retention job.
	ListCommitsByAge(ctx context.Context, since, until time.Time) ([]*model.Commit, error)
	// DeleteCommits removes the given commits and their records. Callers must
	// never pass a unit's latest commit.
	DeleteCommits(ctx context.Context, ids []uuid.UUID) error
}

type UserStore interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByName retrieves a user by its unique name.
	GetUserByName(ctx context.Context, name string) (*model.User, error)
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
