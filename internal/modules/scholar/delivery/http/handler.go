package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sntsa.mx/becas/internal/modules/scholar/dto"
	"sntsa.mx/becas/internal/modules/scholar/service"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/response"
	"sntsa.mx/becas/pkg/validator"
)

type BecarioHandler struct {
	service service.BecarioService
}

func NewBecarioHandler(service service.BecarioService) *BecarioHandler {
	return &BecarioHandler{service: service}
}

func (h *BecarioHandler) CrearForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"curp_format": validator.CURPPattern.String()})
}

func (h *BecarioHandler) Crear(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CrearBecarioInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	becario, err := h.service.Crear(c.Request.Context(), usuarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, becario)
}

func (h *BecarioHandler) List(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	becarios, err := h.service.List(c.Request.Context(), usuarioID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"becarios": becarios})
}

// EditarForm backs the GET side of /editar_becario/:id; it applies the same
// edit-block policy as the POST so a blocked scholar never reaches the form.
func (h *BecarioHandler) EditarForm(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	becarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound)
		return
	}

	becario, err := h.service.Get(c.Request.Context(), usuarioID, becarioID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, becario)
}

func (h *BecarioHandler) Editar(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	becarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound)
		return
	}

	var input dto.EditarBecarioInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	becario, err := h.service.Editar(c.Request.Context(), usuarioID, becarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, becario)
}
