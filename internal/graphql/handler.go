package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/mtslabs/mts/internal/store"
)

// NewHandler builds the POST /graphql endpoint.
func NewHandler(s store.Store) (*Handler, error) {
	schema, err := NewSchema(s)
	if err != nil {
		return nil, err
	}

	return &Handler{schema: schema}, nil
}

type Handler struct {
	schema graphql.Schema
}

func (h *Handler) Handle(c *gin.Context) {
	var req struct {
		Query         string                 `json:"query" binding:"required"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	c.JSON(http.StatusOK, result)
}
