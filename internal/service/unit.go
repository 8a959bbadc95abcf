package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/store"
)

// SourceInput is one line of working content supplied by a client.
type SourceInput struct {
	Sq      int32  `json:"sq"`
	Content string `json:"content"`
	Meta    string `json:"meta"`
}

// NewUnitService creates a new UnitService.
func NewUnitService(store store.Store) *UnitService {
	return &UnitService{
		store: store,
	}
}

// UnitService manages units and their working (uncommitted) source rows.
type UnitService struct {
	store store.Store
}

// CreateUnit creates a unit and its initial source rows atomically.
func (u *UnitService) CreateUnit(ctx context.Context, projectID uuid.UUID, title string, sources []SourceInput) (*model.Unit, error) {
	if len(title) > maxNameLen {
		return nil, ErrTitleTooLong
	}

	rows, err := sourceRows(sources)
	if err != nil {
		return nil, err
	}

	unit := &model.Unit{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     title,
	}

	if err := u.store.CreateUnit(ctx, unit, rows); err != nil {
		return nil, err
	}

	logrus.Infof("created unit %s in project %s with %d sources", unit.ID, projectID, len(rows))

	return unit, nil
}

// GetUnit retrieves a unit by id.
func (u *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	return u.store.GetUnit(ctx, id)
}

// ListUnits retrieves the units of a project, each with its latest commit time.
func (u *UnitService) ListUnits(ctx context.Context, projectID uuid.UUID) ([]*store.UnitListing, error) {
	return u.store.ListUnits(ctx, projectID)
}

// ListSources retrieves a unit's working content ordered by sq.
func (u *UnitService) ListSources(ctx context.Context, unitID uuid.UUID) ([]*model.Source, error) {
	return u.store.ListSources(ctx, unitID)
}

// ReplaceSources swaps a unit's working content. Committed snapshots are
// not touched.
func (u *UnitService) ReplaceSources(ctx context.Context, unitID uuid.UUID, sources []SourceInput) error {
	if _, err := u.store.GetUnit(ctx, unitID); err != nil {
		return err
	}

	rows, err := sourceRows(sources)
	if err != nil {
		return err
	}

	return u.store.ReplaceSources(ctx, unitID, rows)
}

// DeleteUnit deletes a unit and its sources. Units with commit history are
// protected by the commit foreign key.
func (u *UnitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return u.store.DeleteUnit(ctx, id)
}

func sourceRows(sources []SourceInput) ([]*model.Source, error) {
	rows := make([]*model.Source, 0, len(sources))
	seen := make(map[int32]struct{}, len(sources))

	for _, source := range sources {
		if source.Sq < 0 {
			return nil, ErrNegativeSq
		}
		if _, ok := seen[source.Sq]; ok {
			return nil, ErrDuplicateSq
		}
		seen[source.Sq] = struct{}{}

		rows = append(rows, &model.Source{
			Sq:      source.Sq,
			Content: source.Content,
			Meta:    source.Meta,
		})
	}

	return rows, nil
}
