package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mtslabs/mts/internal/service"
)

func NewCommitHandler(commits *service.CommitService) *CommitHandler {
	return &CommitHandler{commits: commits}
}

type CommitHandler struct {
	commits *service.CommitService
}

func (h *CommitHandler) List(c *gin.Context) {
	unitID, err := uuid.Parse(c.Query("unit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing unit query parameter"})
		return
	}

	commits, err := h.commits.ListCommits(c.Request.Context(), unitID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commits)
}

// Create commits the given record list, or snapshots the unit's current
// sources when the request carries no recordList at all.
func (h *CommitHandler) Create(c *gin.Context) {
	var req struct {
		Unit       uuid.UUID              `json:"unit" binding:"required"`
		RecordList *[]service.RecordInput `json:"recordList"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	var commit interface{}
	if req.RecordList == nil {
		commit, err = h.commits.SnapshotUnit(c.Request.Context(), req.Unit)
	} else {
		commit, err = h.commits.CreateCommit(c.Request.Context(), req.Unit, *req.RecordList)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commit)
}

func (h *CommitHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commit id"})
		return
	}

	commit, err := h.commits.GetCommit(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commit)
}

func (h *CommitHandler) Records(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commit id"})
		return
	}

	records, err := h.commits.ListRecords(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Latest serves a unit's latest commit, from the cache when warm.
func (h *CommitHandler) Latest(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	commit, err := h.commits.LatestCommit(c.Request.Context(), unitID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, commit)
}
