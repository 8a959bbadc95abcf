package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mtslabs/mts/internal/cache"
	"github.com/mtslabs/mts/internal/compress"
	"github.com/mtslabs/mts/internal/graphql"
	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/queue"
	"github.com/mtslabs/mts/internal/service"
	"github.com/mtslabs/mts/internal/store"
	"github.com/mtslabs/mts/internal/tester"
)

func testServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()

	gs := store.NewGormStore(tester.TestDB())

	authService := service.NewAuthService(gs, "test-secret", time.Hour)
	projectService := service.NewProjectService(gs)
	unitService := service.NewUnitService(gs)
	commitService := service.NewCommitService(compress.NewNop(), gs, cache.NewNopCommitCache(), queue.NewNopCommitQueue())

	assert.NoError(t, authService.EnsureAdmin(context.TODO(), "bootstrap"))

	gqlHandler, err := graphql.NewHandler(gs)
	assert.NoError(t, err)

	lmProxy, err := NewLMProxy("", "")
	assert.NoError(t, err)

	router := buildRouter(authService, projectService, unitService, commitService, gqlHandler, lmProxy)

	token, _, err := authService.Login(context.TODO(), "admin", "bootstrap")
	assert.NoError(t, err)

	return router, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		assert.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if out != nil && res.Code < http.StatusBadRequest {
		assert.NoError(t, json.Unmarshal(res.Body.Bytes(), out))
	}

	return res
}

func TestRouter_CommitFlow(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	router, token := testServer(t)

	var project model.Project
	res := doJSON(t, router, http.MethodPost, "/api/v1/projects", token, gin.H{"name": "flow"}, &project)
	assert.Equal(t, http.StatusCreated, res.Code)

	var unit model.Unit
	res = doJSON(t, router, http.MethodPost, "/api/v1/units", token, gin.H{
		"project": project.ID,
		"title":   "chapter",
		"sourceList": []gin.H{
			{"sq": 0, "content": "first"},
			{"sq": 1, "content": "second"},
		},
	}, &unit)
	assert.Equal(t, http.StatusCreated, res.Code)

	// no recordList snapshots the working sources
	var commit model.Commit
	res = doJSON(t, router, http.MethodPost, "/api/v1/commits", token, gin.H{"unit": unit.ID}, &commit)
	assert.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, unit.ID, commit.UnitID)

	var records []*model.Record
	res = doJSON(t, router, http.MethodGet, "/api/v1/commits/"+commit.ID.String()+"/records", token, nil, &records)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Content)

	var latest model.Commit
	res = doJSON(t, router, http.MethodGet, "/api/v1/units/"+unit.ID.String()+"/commits/latest", token, nil, &latest)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, commit.ID, latest.ID)

	// replacing sources leaves the committed snapshot alone
	res = doJSON(t, router, http.MethodPut, "/api/v1/units/"+unit.ID.String()+"/sources", token, gin.H{
		"sourceList": []gin.H{{"sq": 0, "content": "rewritten"}},
	}, nil)
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = doJSON(t, router, http.MethodGet, "/api/v1/commits/"+commit.ID.String()+"/records", token, nil, &records)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, records, 2)

	// commit history protects the unit from deletion
	res = doJSON(t, router, http.MethodDelete, "/api/v1/units/"+unit.ID.String(), token, nil, nil)
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestRouter_RejectsAnonymous(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	router, _ := testServer(t)

	res := doJSON(t, router, http.MethodGet, "/api/v1/projects", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = doJSON(t, router, http.MethodPost, "/graphql", "", gin.H{"query": "{ projectList { id } }"}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRouter_GraphQL(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	router, token := testServer(t)

	var project model.Project
	res := doJSON(t, router, http.MethodPost, "/api/v1/projects", token, gin.H{"name": "queried"}, &project)
	assert.Equal(t, http.StatusCreated, res.Code)

	var result struct {
		Data struct {
			ProjectList []struct {
				Name string `json:"name"`
			} `json:"projectList"`
		} `json:"data"`
	}
	res = doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{"query": "{ projectList { name } }"}, &result)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, result.Data.ProjectList, 1)
	assert.Equal(t, "queried", result.Data.ProjectList[0].Name)
}
