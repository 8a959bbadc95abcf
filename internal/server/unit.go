package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mtslabs/mts/internal/service"
)

func NewUnitHandler(units *service.UnitService) *UnitHandler {
	return &UnitHandler{units: units}
}

type UnitHandler struct {
	units *service.UnitService
}

func (h *UnitHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Query("project"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing project query parameter"})
		return
	}

	units, err := h.units.ListUnits(c.Request.Context(), projectID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) Create(c *gin.Context) {
	var req struct {
		Project    uuid.UUID             `json:"project" binding:"required"`
		Title      string                `json:"title"`
		SourceList []service.SourceInput `json:"sourceList"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.units.CreateUnit(c.Request.Context(), req.Project, req.Title, req.SourceList)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	unit, err := h.units.GetUnit(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) Sources(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	sources, err := h.units.ListSources(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sources)
}

func (h *UnitHandler) ReplaceSources(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	var req struct {
		SourceList []service.SourceInput `json:"sourceList"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.units.ReplaceSources(c.Request.Context(), id, req.SourceList); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UnitHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	if err := h.units.DeleteUnit(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
