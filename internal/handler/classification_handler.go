package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/trajectory-classifier/internal/classification"
	"github.com/jengzang/trajectory-classifier/internal/service"
	"github.com/jengzang/trajectory-classifier/pkg/response"
)

// ClassificationHandler handles HTTP requests for trajectory neighbors
type ClassificationHandler struct {
	service *service.ClassificationService
}

// NewClassificationHandler creates a new classification handler
func NewClassificationHandler(service *service.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{service: service}
}

// fail maps service and engine errors onto HTTP responses
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotLoaded):
		response.ServiceUnavailable(c, err.Error())
	case errors.Is(err, classification.ErrOutOfRange):
		response.NotFound(c, err.Error())
	case errors.Is(err, classification.ErrUnknownMetric):
		response.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, err.Error())
	}
}

// ListTrajectories handles GET /api/v1/trajectories
func (h *ClassificationHandler) ListTrajectories(c *gin.Context) {
	list, err := h.service.Trajectories()
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  list,
		"count": len(list),
	})
}

// GetNeighbors handles GET /api/v1/trajectories/:index/neighbors?metric=length
func (h *ClassificationHandler) GetNeighbors(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid trajectory index")
		return
	}

	result, err := h.service.Neighbors(index, c.DefaultQuery("metric", "length"))
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, result)
}

// GetSummary handles GET /api/v1/summary
func (h *ClassificationHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, summary)
}

// GetClassifications handles GET /api/v1/debug/classifications
func (h *ClassificationHandler) GetClassifications(c *gin.Context) {
	dump, err := h.service.Dump()
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  dump,
		"count": len(dump),
	})
}

// Reload handles POST /api/v1/reload
func (h *ClassificationHandler) Reload(c *gin.Context) {
	if err := h.service.Reload(c.Request.Context()); err != nil {
		if errors.Is(err, classification.ErrInvalidInput) {
			response.Error(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		fail(c, err)
		return
	}

	h.GetSummary(c)
}
