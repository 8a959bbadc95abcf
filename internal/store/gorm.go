package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mtslabs/mts/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateProject(ctx context.Context, project *model.Project) error {
	return translate(g.db.WithContext(ctx).Create(project).Error)
}

func (g *GormStore) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (g *GormStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	err := g.db.WithContext(ctx).Order("name").Find(&projects).Error
	return projects, translate(err)
}

func (g *GormStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) CreateUnit(ctx context.Context, unit *model.Unit, sources []*model.Source) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(unit).Error; err != nil {
			return err
		}

		if len(sources) == 0 {
			return nil
		}

		for _, source := range sources {
			source.UnitID = unit.ID
		}

		return tx.Create(sources).Error
	})

	return translate(err)
}

func (g *GormStore) GetUnit(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, translate(err)
	}
	return &unit, nil
}

func (g *GormStore) ListUnits(ctx context.Context, projectID uuid.UUID) ([]*UnitListing, error) {
	var units []*UnitListing
	err := g.db.WithContext(ctx).
		Table(`unit`).
		Select(`unit.id, unit.project_id, unit.title, unit.commit_id, max("commit".created_at) AS updated_at`).
		Joins(`LEFT JOIN "commit" ON "commit".unit_id = unit.id`).
		Where("unit.project_id = ?", projectID).
		Group("unit.id").
		Order("unit.title").
		Scan(&units).Error
	return units, translate(err)
}

func (g *GormStore) ListSources(ctx context.Context, unitID uuid.UUID) ([]*model.Source, error) {
	var sources []*model.Source
	err := g.db.WithContext(ctx).Where("unit_id = ?", unitID).Order("sq").Find(&sources).Error
	return sources, translate(err)
}

func (g *GormStore) ReplaceSources(ctx context.Context, unitID uuid.UUID, sources []*model.Source) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", unitID).Delete(&model.Source{}).Error; err != nil {
			return err
		}

		if len(sources) == 0 {
			return nil
		}

		for _, source := range sources {
			source.UnitID = unitID
		}

		return tx.Create(sources).Error
	})

	return translate(err)
}

func (g *GormStore) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", id).Delete(&model.Source{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Unit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})

	return translate(err)
}

// CreateCommit moves the unit's latest-commit pointer in the same transaction
// as the commit insert. This replaces the database trigger the original
// schema relied on.
func (g *GormStore) CreateCommit(ctx context.Context, commit *model.Commit, records []*model.Record) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(commit).Error; err != nil {
			return err
		}

		if len(records) > 0 {
			for _, record := range records {
				record.CommitID = commit.ID
			}

			if err := tx.Create(records).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Unit{}).
			Where("id = ?", commit.UnitID).
			Update("commit_id", commit.ID).Error
	})

	return translate(err)
}

func (g *GormStore) GetCommit(ctx context.Context, id uuid.UUID) (*model.Commit, error) {
	var commit model.Commit
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&commit).Error
	if err != nil {
		return nil, translate(err)
	}
	return &commit, nil
}

func (g *GormStore) ListCommits(ctx context.Context, unitID uuid.UUID) ([]*model.Commit, error) {
	var commits []*model.Commit
	err := g.db.WithContext(ctx).Where("unit_id = ?", unitID).Order("created_at").Find(&commits).Error
	return commits, translate(err)
}

func (g *GormStore) ListRecords(ctx context.Context, commitID uuid.UUID) ([]*model.Record, error) {
	var records []*model.Record
	err := g.db.WithContext(ctx).Where("commit_id = ?", commitID).Order("sq").Find(&records).Error
	return records, translate(err)
}

func (g *GormStore) GetLatestCommit(ctx context.Context, unitID uuid.UUID) (*model.Commit, error) {
	var commit model.Commit
	err := g.db.WithContext(ctx).Where("unit_id = ?", unitID).Order("created_at desc").First(&commit).Error
	if err != nil {
		return nil, translate(err)
	}
	return &commit, nil
}

func (g *GormStore) ListCommitsByAge(ctx context.Context, since, until time.Time) ([]*model.Commit, error) {
	var commits []*model.Commit
	err := g.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", since, until).
		Order("unit_id").Order("created_at").
		Find(&commits).Error
	return commits, translate(err)
}

func (g *GormStore) DeleteCommits(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("commit_id IN ?", ids).Delete(&model.Record{}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).Delete(&model.Commit{}).Error
	})

	return translate(err)
}

func (g *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	return translate(g.db.WithContext(ctx).Create(user).Error)
}

func (g *GormStore) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *GormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
