package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coderr/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/base-info/", h.BaseInfo)
}

// BaseInfo returns platform counters.
// @Summary		Platform statistics
// @Tags		General
// @Success		200	{object}	BaseInfoResponse
// @Router		/base-info/ [GET]
func (h *Handler) BaseInfo(c *gin.Context) {
	out, err := h.service.BaseInfo(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
