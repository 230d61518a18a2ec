package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coderr/internal/access"
	"coderr/internal/domain"
	"coderr/internal/middleware"
	"coderr/internal/pkg/response"
	"coderr/internal/pkg/utils"
	"coderr/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	orders := api.Group("/orders")
	{
		orders.GET("/", h.List)
		orders.POST("/", h.Create)
		orders.GET("/:id/", h.Get)
		orders.PATCH("/:id/", h.Update)
		orders.PUT("/:id/", h.Update)
		orders.DELETE("/:id/", h.Delete)
	}
	api.GET("/order-count/:id/", h.countHandler(domain.OrderInProgress, "order_count"))
	api.GET("/completed-order-count/:id/", h.countHandler(domain.OrderCompleted, "completed_order_count"))
}

func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	response.Success(c, http.StatusOK, out)
}

// Create places an order for one offer tier.
// @Summary		Create order
// @Tags		Orders
// @Security	TokenAuth
// @Param		request	body	CreateOrderRequest	true	"offer_detail_id"
// @Success		201	{object}	OrderResponse
// @Failure		400	{object}	map[string][]string
// @Failure		403	{object}	map[string]string	"Customer profile required"
// @Failure		404	{object}	map[string]string	"Offer detail not found"
// @Router		/orders/ [POST]
func (h *Handler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if err := access.CheckAction(p, access.Order, access.Create); err != nil {
		response.FromError(c, err)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	o, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	o, err := h.service.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	action := access.ActionForMethod(c.Request.Method)
	o, err := h.service.Authorize(c.Request.Context(), middleware.PrincipalFrom(c), action, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	o, err = h.service.UpdateStatus(c.Request.Context(), o, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) countHandler(status domain.OrderStatus, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParamID(c, "id")
		if err != nil {
			response.FromError(c, err)
			return
		}

		n, err := h.service.CountForBusiness(c.Request.Context(), middleware.PrincipalFrom(c), id, status)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{key: n})
	}
}
