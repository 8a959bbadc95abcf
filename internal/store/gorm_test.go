package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}

func seedUnit(t *testing.T, g *GormStore) *model.Unit {
	t.Helper()

	project := &model.Project{ID: uuid.New(), Name: "test project"}
	assert.NoError(t, g.CreateProject(context.TODO(), project))

	unit := &model.Unit{ID: uuid.New(), ProjectID: project.ID, Title: "test unit"}
	assert.NoError(t, g.CreateUnit(context.TODO(), unit, nil))

	return unit
}

func TestGormStore_GetProject_NotFound(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	_, err := g.GetProject(context.TODO(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_CreateUnit_MissingProject(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	unit := &model.Unit{ID: uuid.New(), ProjectID: uuid.New(), Title: "orphan"}
	err := g.CreateUnit(context.TODO(), unit, nil)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_CreateUnit_DuplicateSourceSq(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	project := &model.Project{ID: uuid.New(), Name: "test project"}
	assert.NoError(t, g.CreateProject(context.TODO(), project))

	unit := &model.Unit{ID: uuid.New(), ProjectID: project.ID, Title: "dup"}
	err := g.CreateUnit(context.TODO(), unit, []*model.Source{
		{Sq: 0, Content: "first"},
		{Sq: 0, Content: "second"},
	})
	assert.ErrorIs(t, err, ErrNotUnique)

	// the whole insert rolls back, the unit must not exist
	_, err = g.GetUnit(context.TODO(), unit.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_ReplaceSources_MissingUnit(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	err := g.ReplaceSources(context.TODO(), uuid.New(), []*model.Source{
		{Sq: 0, Content: "orphan"},
	})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_ReplaceSources(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	err := g.ReplaceSources(context.TODO(), unit.ID, []*model.Source{
		{Sq: 2, Content: "third"},
		{Sq: 0, Content: "first"},
		{Sq: 1, Content: "second"},
	})
	assert.NoError(t, err)

	sources, err := g.ListSources(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Len(t, sources, 3)
	assert.Equal(t, "first", sources[0].Content)
	assert.Equal(t, "second", sources[1].Content)
	assert.Equal(t, "third", sources[2].Content)

	err = g.ReplaceSources(context.TODO(), unit.ID, []*model.Source{
		{Sq: 0, Content: "only"},
	})
	assert.NoError(t, err)

	sources, err = g.ListSources(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Len(t, sources, 1)
	assert.Equal(t, "only", sources[0].Content)
}

func TestGormStore_CreateCommit_MovesLatestPointer(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	assert.Nil(t, unit.CommitID)

	first := &model.Commit{ID: uuid.New(), UnitID: unit.ID, CreatedAt: time.Now().UTC()}
	err := g.CreateCommit(context.TODO(), first, []*model.Record{
		{Sq: 0, Content: "v1"},
	})
	assert.NoError(t, err)

	got, err := g.GetUnit(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got.CommitID)
	assert.Equal(t, first.ID, *got.CommitID)

	second := &model.Commit{ID: uuid.New(), UnitID: unit.ID, CreatedAt: time.Now().UTC().Add(time.Second)}
	err = g.CreateCommit(context.TODO(), second, []*model.Record{
		{Sq: 0, Content: "v2"},
	})
	assert.NoError(t, err)

	got, err = g.GetUnit(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Equal(t, second.ID, *got.CommitID)

	latest, err := g.GetLatestCommit(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestGormStore_CreateCommit_MissingUnit(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	commit := &model.Commit{ID: uuid.New(), UnitID: uuid.New(), CreatedAt: time.Now().UTC()}
	err := g.CreateCommit(context.TODO(), commit, nil)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_CreateCommit_DuplicateRecordSq(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	commit := &model.Commit{ID: uuid.New(), UnitID: unit.ID, CreatedAt: time.Now().UTC()}
	err := g.CreateCommit(context.TODO(), commit, []*model.Record{
		{Sq: 1, Content: "a"},
		{Sq: 1, Content: "b"},
	})
	assert.ErrorIs(t, err, ErrNotUnique)

	// rollback must leave the latest pointer untouched
	got, err := g.GetUnit(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.CommitID)
}

func TestGormStore_OrphanRecord(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	// CreateCommit stamps records with the commit it inserts, so the record
	// foreign key is exercised with a direct insert
	err := tester.TestDB().Create(&model.Record{CommitID: uuid.New(), Sq: 0, Content: "orphan"}).Error
	assert.ErrorIs(t, translate(err), ErrForeignKey)
}

func TestGormStore_ListUnits(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	project := &model.Project{ID: uuid.New(), Name: "listing"}
	assert.NoError(t, g.CreateProject(context.TODO(), project))

	bare := &model.Unit{ID: uuid.New(), ProjectID: project.ID, Title: "a bare"}
	assert.NoError(t, g.CreateUnit(context.TODO(), bare, nil))

	committed := &model.Unit{ID: uuid.New(), ProjectID: project.ID, Title: "b committed"}
	assert.NoError(t, g.CreateUnit(context.TODO(), committed, nil))

	commit := &model.Commit{ID: uuid.New(), UnitID: committed.ID, CreatedAt: time.Now().UTC()}
	assert.NoError(t, g.CreateCommit(context.TODO(), commit, nil))

	units, err := g.ListUnits(context.TODO(), project.ID)
	assert.NoError(t, err)
	assert.Len(t, units, 2)

	assert.Equal(t, bare.ID, units[0].ID)
	assert.Nil(t, units[0].CommitID)
	assert.Nil(t, units[0].UpdatedAt)

	assert.Equal(t, committed.ID, units[1].ID)
	assert.NotNil(t, units[1].CommitID)
	assert.Equal(t, commit.ID, *units[1].CommitID)
	assert.NotNil(t, units[1].UpdatedAt)
}

func TestGormStore_DeleteProject_WithUnits(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	err := g.DeleteProject(context.TODO(), unit.ProjectID)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_DeleteUnit(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	assert.NoError(t, g.ReplaceSources(context.TODO(), unit.ID, []*model.Source{
		{Sq: 0, Content: "gone with the unit"},
	}))

	assert.NoError(t, g.DeleteUnit(context.TODO(), unit.ID))

	_, err := g.GetUnit(context.TODO(), unit.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// project is empty now, delete goes through
	assert.NoError(t, g.DeleteProject(context.TODO(), unit.ProjectID))
}

func TestGormStore_DeleteUnit_WithCommits(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	commit := &model.Commit{ID: uuid.New(), UnitID: unit.ID, CreatedAt: time.Now().UTC()}
	assert.NoError(t, g.CreateCommit(context.TODO(), commit, nil))

	err := g.DeleteUnit(context.TODO(), unit.ID)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_DeleteCommits(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	unit := seedUnit(t, g)

	first := &model.Commit{ID: uuid.New(), UnitID: unit.ID, CreatedAt: time.Now().UTC()}
	assert.NoError(t, g.CreateCommit(context.TODO(), first, []*model.Record{{Sq: 0, Content: "v1"}}))

	second := &model.Commit{ID: uuid.New(), UnitID: unit.ID, CreatedAt: time.Now().UTC().Add(time.Second)}
	assert.NoError(t, g.CreateCommit(context.TODO(), second, []*model.Record{{Sq: 0, Content: "v2"}}))

	assert.NoError(t, g.DeleteCommits(context.TODO(), []uuid.UUID{first.ID}))

	_, err := g.GetCommit(context.TODO(), first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := g.ListRecords(context.TODO(), first.ID)
	assert.NoError(t, err)
	assert.Empty(t, records)

	_, err = g.GetCommit(context.TODO(), second.ID)
	assert.NoError(t, err)
}

func TestGormStore_CreateUser_DuplicateName(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())

	user := &model.User{ID: uuid.New(), Name: "alice", Hash: "x"}
	assert.NoError(t, g.CreateUser(context.TODO(), user))

	again := &model.User{ID: uuid.New(), Name: "alice", Hash: "y"}
	err := g.CreateUser(context.TODO(), again)
	assert.ErrorIs(t, err, ErrNotUnique)
}
