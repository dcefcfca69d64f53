package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogService "sntsa.mx/becas/internal/modules/catalog/service"
	"sntsa.mx/becas/internal/modules/worker/dto"
	"sntsa.mx/becas/internal/modules/worker/service"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/response"
	"sntsa.mx/becas/pkg/validator"
)

type TrabajadorHandler struct {
	service  service.TrabajadorService
	catalogo catalogService.CatalogoService
}

func NewTrabajadorHandler(service service.TrabajadorService, catalogo catalogService.CatalogoService) *TrabajadorHandler {
	return &TrabajadorHandler{service: service, catalogo: catalogo}
}

// CrearForm backs the GET side of /create_trabajador with the reference data
// the profile form needs.
func (h *TrabajadorHandler) CrearForm(c *gin.Context) {
	catalogos, err := h.catalogo.GetCatalogos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"catalogos": catalogos})
}

func (h *TrabajadorHandler) Crear(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CrearTrabajadorInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	trabajador, err := h.service.Crear(c.Request.Context(), usuarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, trabajador)
}

// EditarForm backs the GET side of /editar_usuario with the current profile.
func (h *TrabajadorHandler) EditarForm(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	trabajador, err := h.service.GetByUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, trabajador)
}

func (h *TrabajadorHandler) Editar(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.EditarTrabajadorInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	trabajador, err := h.service.Editar(c.Request.Context(), usuarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, trabajador)
}

// List is the staff view over worker profiles, optionally filtered by the
// aprobado flag.
func (h *TrabajadorHandler) List(c *gin.Context) {
	var aprobado *bool
	if raw, ok := c.GetQuery("aprobado"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, apperror.Wrap(apperror.ErrInvalidInput, "aprobado debe ser true o false"))
			return
		}
		aprobado = &v
	}

	trabajadores, err := h.service.List(c.Request.Context(), aprobado)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trabajadores": trabajadores})
}

func (h *TrabajadorHandler) Aprobar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound)
		return
	}

	var input struct {
		Aprobado bool `json:"aprobado"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		// No body means approve.
		input.Aprobado = true
	}

	if err := h.service.Aprobar(c.Request.Context(), id, input.Aprobado); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"aprobado": input.Aprobado})
}
