package offer

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"coderr/internal/access"
	"coderr/internal/middleware"
	"coderr/internal/pkg/apperr"
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
	offers := api.Group("/offers")
	{
		offers.GET("/", h.List)
		offers.POST("/", h.Create)
		offers.GET("/:id/", h.Get)
		offers.PATCH("/:id/", h.Update)
		offers.PUT("/:id/", h.Update)
		offers.DELETE("/:id/", h.Delete)
	}
	api.GET("/offerdetails/:id/", h.GetDetail)
}

// List returns a page of offers.
// @Summary		List offers
// @Tags		Offers
// @Security	TokenAuth
// @Param		creator_id			query	int		false	"Owner user id"
// @Param		min_price			query	number	false	"Minimum tier price at least"
// @Param		max_delivery_time	query	int		false	"Fastest tier at most"
// @Param		search				query	string	false	"Substring of title or description"
// @Param		ordering			query	string	false	"updated_at, -updated_at, min_price, -min_price"
// @Param		page				query	int		false	"Page number"
// @Param		page_size			query	int		false	"Page size (max 100)"
// @Success		200	{object}	PageResponse
// @Router		/offers/ [GET]
func (h *Handler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if err := access.CheckAction(p, access.Offer, access.List); err != nil {
		response.FromError(c, err)
		return
	}

	q, err := parseListQuery(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), p, q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := PageResponse{Count: total, Results: make([]OfferListItem, 0, len(items))}
	for _, it := range items {
		out.Results = append(out.Results, toListItem(c, it))
	}
	if int64(q.Page*q.PageSize) < total {
		next := pageLink(c, q.Page+1)
		out.Next = &next
	}
	if q.Page > 1 {
		prev := pageLink(c, q.Page-1)
		out.Previous = &prev
	}
	response.Success(c, http.StatusOK, out)
}

// Create publishes a new offer with its three tiers.
// @Summary		Create offer
// @Tags		Offers
// @Security	TokenAuth
// @Param		request	body	OfferInput	true	"Offer with basic, standard and premium details"
// @Success		201	{object}	OfferResponse
// @Failure		400	{object}	map[string][]string
// @Failure		403	{object}	map[string]string	"Business profile required"
// @Router		/offers/ [POST]
func (h *Handler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if err := access.CheckAction(p, access.Offer, access.Create); err != nil {
		response.FromError(c, err)
		return
	}

	var in OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	o, err := h.service.Create(c.Request.Context(), p, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toOfferResponse(o))
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
	response.Success(c, http.StatusOK, toOfferResponse(o))
}

// Update handles PUT and PATCH; both apply only the fields sent.
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

	var in OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	o, err = h.service.Update(c.Request.Context(), o, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toOfferResponse(o))
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

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	d, err := h.service.GetDetail(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDetailResponse(d))
}

func parseListQuery(c *gin.Context) (ListQuery, error) {
	q := ListQuery{
		Page:     1,
		PageSize: DefaultPageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: strings.TrimSpace(c.Query("ordering")),
	}

	verr := &apperr.ValidationError{}
	if v, ok := utils.QueryInt64(c, "creator_id", verr); ok {
		q.CreatorID = v
	}
	if v, ok := utils.QueryDecimal(c, "min_price", verr); ok {
		q.MinPrice = &v
	}
	if v, ok := utils.QueryInt64(c, "max_delivery_time", verr); ok {
		days := int(v)
		q.MaxDeliveryTime = &days
	}
	if err := verr.OrNil(); err != nil {
		return q, err
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperr.NotFound("Invalid page.")
		}
		q.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			q.PageSize = min(size, MaxPageSize)
		}
	}
	return q, nil
}

func pageLink(c *gin.Context, page int) string {
	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	return utils.AbsoluteURL(c, c.Request.URL.Path, query)
}
