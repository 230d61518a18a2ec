package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coderr/internal/pkg/response"
	"coderr/internal/pkg/validator"
)

// Handler manages the HTTP side of registration and login.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/registration/", h.Register)
	api.POST("/login/", h.Login)
}

// Register creates a customer or business account.
// @Summary		Register
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"username, email, password, repeated_password, type"
// @Success		201	{object}	TokenResponse
// @Failure		400	{object}	map[string][]string	"Field errors"
// @Router		/registration/ [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	out, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

// Login exchanges credentials for the user's token.
// @Summary		Login
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"username, password"
// @Success		200	{object}	TokenResponse
// @Failure		400	{object}	map[string][]string	"Invalid credentials"
// @Router		/login/ [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBinding(err))
		return
	}

	out, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
