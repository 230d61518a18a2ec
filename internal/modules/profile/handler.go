package profile

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
	api.GET("/profile/:id/", h.Get)
	api.PATCH("/profile/:id/", h.Update)
	api.PUT("/profile/:id/", h.Update)

	profiles := api.Group("/profiles")
	{
		profiles.GET("/business/", h.listByType(domain.RoleBusiness))
		profiles.GET("/customer/", h.listByType(domain.RoleCustomer))
	}
}

// Get returns one profile.
// @Summary		Get profile
// @Tags		Profiles
// @Security	TokenAuth
// @Param		id	path	int	true	"Profile ID"
// @Success		200	{object}	ProfileResponse
// @Failure		404	{object}	map[string]string
// @Router		/profile/{id}/ [GET]
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	prof, err := h.service.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileResponse(prof))
}

// Update changes the caller's own profile.
// @Summary		Update profile
// @Tags		Profiles
// @Security	TokenAuth
// @Param		id		path	int						true	"Profile ID"
// @Param		request	body	UpdateProfileRequest	true	"Fields to change"
// @Success		200	{object}	ProfileResponse
// @Failure		400	{object}	map[string][]string
// @Failure		403	{object}	map[string]string	"Not the owner"
// @Router		/profile/{id}/ [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	action := access.ActionForMethod(c.Request.Method)
	prof, err := h.service.Authorize(c.Request.Context(), middleware.PrincipalFrom(c), action, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	prof, err = h.service.Update(c.Request.Context(), prof, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileResponse(prof))
}

func (h *Handler) listByType(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := h.service.ListByType(c.Request.Context(), middleware.PrincipalFrom(c), role)
		if err != nil {
			response.FromError(c, err)
			return
		}

		out := make([]ProfileResponse, 0, len(profiles))
		for i := range profiles {
			out = append(out, toProfileResponse(&profiles[i]))
		}
		response.Success(c, http.StatusOK, out)
	}
}
