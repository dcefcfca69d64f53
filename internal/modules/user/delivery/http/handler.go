package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sntsa.mx/becas/internal/modules/user/dto"
	"sntsa.mx/becas/internal/modules/user/service"
	"sntsa.mx/becas/pkg/response"
	"sntsa.mx/becas/pkg/validator"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupForm backs the GET side of /signup: the client needs the expected
// CURP format to validate before submitting.
func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"curp_format": validator.CURPPattern.String()})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) SigninForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"curp", "password"}})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var input dto.SigninInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Signin(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Signout(c *gin.Context) {
	jti := c.GetString("token_jti")

	var expiresAt time.Time
	if v, ok := c.Get("token_exp"); ok {
		if t, ok := v.(time.Time); ok {
			expiresAt = t
		}
	}

	if err := h.service.Signout(c.Request.Context(), jti, expiresAt); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "sesión cerrada"})
}
