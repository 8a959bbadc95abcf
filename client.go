package mts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/service"
	"github.com/mtslabs/mts/internal/store"
)

// Client talks to a running mts server over its REST API.
type Client struct {
	base  string
	token string
	http  *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		base:  baseURL,
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

// LoginResult carries the token to persist for later calls.
type LoginResult struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

func (c *Client) Login(name, pass string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"name": name,
		"pass": pass,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateProject(name string) (*model.Project, error) {
	var project model.Project
	err := c.do(http.MethodPost, "/api/v1/projects", map[string]string{"name": name}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) ListProjects() ([]*model.Project, error) {
	var projects []*model.Project
	err := c.do(http.MethodGet, "/api/v1/projects", nil, &projects)
	return projects, err
}

func (c *Client) CreateUnit(projectID uuid.UUID, title string, sources []service.SourceInput) (*model.Unit, error) {
	var unit model.Unit
	err := c.do(http.MethodPost, "/api/v1/units", map[string]interface{}{
		"project":    projectID,
		"title":      title,
		"sourceList": sources,
	}, &unit)
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (c *Client) ListUnits(projectID uuid.UUID) ([]*store.UnitListing, error) {
	var units []*store.UnitListing
	err := c.do(http.MethodGet, "/api/v1/units?project="+projectID.String(), nil, &units)
	return units, err
}

func (c *Client) GetSources(unitID uuid.UUID) ([]*model.Source, error) {
	var sources []*model.Source
	err := c.do(http.MethodGet, "/api/v1/units/"+unitID.String()+"/sources", nil, &sources)
	return sources, err
}

// CreateCommit snapshots the given records. A nil records slice asks the
// server to snapshot the unit's current sources instead.
func (c *Client) CreateCommit(unitID uuid.UUID, records []service.RecordInput) (*model.Commit, error) {
	body := map[string]interface{}{"unit": unitID}
	if records != nil {
		body["recordList"] = records
	}

	var commit model.Commit
	err := c.do(http.MethodPost, "/api/v1/commits", body, &commit)
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (c *Client) ListCommits(unitID uuid.UUID) ([]*model.Commit, error) {
	var commits []*model.Commit
	err := c.do(http.MethodGet, "/api/v1/commits?unit="+unitID.String(), nil, &commits)
	return commits, err
}

func (c *Client) GetRecords(commitID uuid.UUID) ([]*model.Record, error) {
	var records []*model.Record
	err := c.do(http.MethodGet, "/api/v1/commits/"+commitID.String()+"/records", nil, &records)
	return records, err
}

func (c *Client) LatestCommit(unitID uuid.UUID) (*model.Commit, error) {
	var commit model.Commit
	err := c.do(http.MethodGet, "/api/v1/units/"+unitID.String()+"/commits/latest", nil, &commit)
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", res.Status, apiErr.Error)
		}
		return fmt.Errorf("unexpected status: %s", res.Status)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}
