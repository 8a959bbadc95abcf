package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/store"
)

const maxNameLen = 256

// NewProjectService creates a new ProjectService.
func NewProjectService(store store.Store) *ProjectService {
	return &ProjectService{
		store: store,
	}
}

// ProjectService manages the root project entities.
type ProjectService struct {
	store store.Store
}

// CreateProject creates a new project with a fresh id.
func (p *ProjectService) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	if len(name) > maxNameLen {
		return nil, ErrNameTooLong
	}

	project := &model.Project{
		ID:   uuid.New(),
		Name: name,
	}

	if err := p.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	logrus.Infof("created project %s", project.ID)

	return project, nil
}

// GetProject retrieves a project by id.
func (p *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return p.store.GetProject(ctx, id)
}

// ListProjects retrieves all projects.
func (p *ProjectService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return p.store.ListProjects(ctx)
}

// DeleteProject deletes an empty project. Projects that still own units are
// protected by the unit foreign key.
func (p *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return p.store.DeleteProject(ctx, id)
}
