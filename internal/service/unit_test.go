package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/store"
	"github.com/mtslabs/mts/internal/tester"
)

func testProject(t *testing.T, gs store.Store) *model.Project {
	t.Helper()

	project, err := NewProjectService(gs).CreateProject(context.TODO(), "test project")
	assert.NoError(t, err)

	return project
}

func TestUnitService_CreateUnit(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gs := store.NewGormStore(tester.TestDB())
	units := NewUnitService(gs)
	project := testProject(t, gs)

	unit, err := units.CreateUnit(context.TODO(), project.ID, "chapter one", []SourceInput{
		{Sq: 0, Content: "first line"},
		{Sq: 1, Content: "second line", Meta: `{"lang":"en"}`},
	})
	assert.NoError(t, err)
	assert.NotNil(t, unit)
	assert.Nil(t, unit.CommitID)

	sources, err := units.ListSources(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Len(t, sources, 2)
	assert.Equal(t, "first line", sources[0].Content)
	assert.Equal(t, `{"lang":"en"}`, sources[1].Meta)
}

func TestUnitService_CreateUnit_SqValidation(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gs := store.NewGormStore(tester.TestDB())
	units := NewUnitService(gs)
	project := testProject(t, gs)

	_, err := units.CreateUnit(context.TODO(), project.ID, "bad", []SourceInput{
		{Sq: -1, Content: "negative"},
	})
	assert.ErrorIs(t, err, ErrNegativeSq)

	_, err = units.CreateUnit(context.TODO(), project.ID, "bad", []SourceInput{
		{Sq: 3, Content: "a"},
		{Sq: 3, Content: "b"},
	})
	assert.ErrorIs(t, err, ErrDuplicateSq)
}

func TestUnitService_ReplaceSources(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gs := store.NewGormStore(tester.TestDB())
	units := NewUnitService(gs)
	project := testProject(t, gs)

	unit, err := units.CreateUnit(context.TODO(), project.ID, "draft", []SourceInput{
		{Sq: 0, Content: "old"},
	})
	assert.NoError(t, err)

	err = units.ReplaceSources(context.TODO(), unit.ID, []SourceInput{
		{Sq: 0, Content: "new"},
		{Sq: 1, Content: "extra"},
	})
	assert.NoError(t, err)

	sources, err := units.ListSources(context.TODO(), unit.ID)
	assert.NoError(t, err)
	assert.Len(t, sources, 2)
	assert.Equal(t, "new", sources[0].Content)

	// unknown units are rejected before the swap
	err = units.ReplaceSources(context.TODO(), uuid.New(), []SourceInput{
		{Sq: 0, Content: "nowhere"},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnitService_ListUnits(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	gs := store.NewGormStore(tester.TestDB())
	units := NewUnitService(gs)
	project := testProject(t, gs)

	first, err := units.CreateUnit(context.TODO(), project.ID, "a unit", nil)
	assert.NoError(t, err)
	_, err = units.CreateUnit(context.TODO(), project.ID, "b unit", nil)
	assert.NoError(t, err)

	list, err := units.ListUnits(context.TODO(), project.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Nil(t, list[0].CommitID)
	assert.Nil(t, list[0].UpdatedAt)
}
