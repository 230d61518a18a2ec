package review

import (
	"net/http"
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
	reviews := api.Group("/reviews")
	{
		reviews.GET("/", h.List)
		reviews.POST("/", h.Create)
		reviews.GET("/:id/", h.Get)
		reviews.PATCH("/:id/", h.Update)
		reviews.PUT("/:id/", h.Update)
		reviews.DELETE("/:id/", h.Delete)
	}
}

// List returns reviews, optionally filtered by business user or reviewer.
// @Summary		List reviews
// @Tags		Reviews
// @Security	TokenAuth
// @Param		business_user_id	query	int		false	"Reviewed business user"
// @Param		reviewer_id			query	int		false	"Author"
// @Param		ordering			query	string	false	"updated_at, -updated_at, rating, -rating"
// @Success		200	{array}	ReviewResponse
// @Router		/reviews/ [GET]
func (h *Handler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if err := access.CheckAction(p, access.Review, access.List); err != nil {
		response.FromError(c, err)
		return
	}

	verr := &apperr.ValidationError{}
	q := ListQuery{Ordering: strings.TrimSpace(c.Query("ordering"))}
	if v, ok := utils.QueryInt64(c, "business_user_id", verr); ok {
		q.BusinessUserID = v
	}
	if v, ok := utils.QueryInt64(c, "reviewer_id", verr); ok {
		q.ReviewerID = v
	}
	if err := verr.OrNil(); err != nil {
		response.FromError(c, err)
		return
	}

	reviews, err := h.service.List(c.Request.Context(), p, q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	response.Success(c, http.StatusOK, out)
}

// Create stores a review of a business user.
// @Summary		Create review
// @Tags		Reviews
// @Security	TokenAuth
// @Param		request	body	CreateReviewRequest	true	"business_user, rating, description"
// @Success		201	{object}	ReviewResponse
// @Failure		400	{object}	map[string][]string
// @Failure		403	{object}	map[string]string	"Customer profile required"
// @Router		/reviews/ [POST]
func (h *Handler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if err := access.CheckAction(p, access.Review, access.Create); err != nil {
		response.FromError(c, err)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	rv, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toReviewResponse(rv))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	rv, err := h.service.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewResponse(rv))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	action := access.ActionForMethod(c.Request.Method)
	rv, err := h.service.Authorize(c.Request.Context(), middleware.PrincipalFrom(c), action, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	rv, err = h.service.Update(c.Request.Context(), rv, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewResponse(rv))
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
