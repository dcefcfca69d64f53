package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/application/dto"
	"sntsa.mx/becas/internal/modules/application/service"
	catalogService "sntsa.mx/becas/internal/modules/catalog/service"
	scholarService "sntsa.mx/becas/internal/modules/scholar/service"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/response"
	"sntsa.mx/becas/pkg/validator"
)

type SolicitudHandler struct {
	service  service.SolicitudService
	becarios scholarService.BecarioService
	catalogo catalogService.CatalogoService
}

func NewSolicitudHandler(service service.SolicitudService, becarios scholarService.BecarioService, catalogo catalogService.CatalogoService) *SolicitudHandler {
	return &SolicitudHandler{service: service, becarios: becarios, catalogo: catalogo}
}

// CrearForm backs the GET side of the three create_solicitud_* routes: the
// form needs the caller's scholars and, for the graded categories, the grade
// catalog.
func (h *SolicitudHandler) CrearForm(conGrados bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuarioID, err := response.GetUserID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		becarios, err := h.becarios.List(c.Request.Context(), usuarioID)
		if err != nil {
			response.Error(c, err)
			return
		}

		payload := gin.H{"becarios": becarios}
		if conGrados {
			grados, err := h.catalogo.GetGrados(c.Request.Context())
			if err != nil {
				response.Error(c, err)
				return
			}
			payload["grados"] = grados
		}

		c.JSON(http.StatusOK, payload)
	}
}

func (h *SolicitudHandler) CrearAprovechamiento(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CrearAprovechamientoInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	solicitud, err := h.service.CrearAprovechamiento(c.Request.Context(), usuarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, solicitud)
}

func (h *SolicitudHandler) CrearExcelencia(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CrearExcelenciaInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	solicitud, err := h.service.CrearExcelencia(c.Request.Context(), usuarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, solicitud)
}

func (h *SolicitudHandler) CrearEspecial(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CrearEspecialInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	solicitud, err := h.service.CrearEspecial(c.Request.Context(), usuarioID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, solicitud)
}

func (h *SolicitudHandler) List(c *gin.Context) {
	usuarioID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	solicitudes, err := h.service.ListByUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, solicitudes)
}

// ListByCategoria is the staff review listing, optionally filtered by estado.
func (h *SolicitudHandler) ListByCategoria(c *gin.Context) {
	categoria := model.Categoria(c.Param("categoria"))
	if !categoria.Valid() {
		response.Error(c, apperror.ErrNotFound)
		return
	}

	var estado *model.Estado
	if raw, ok := c.GetQuery("estado"); ok {
		e := model.Estado(raw)
		if !e.Valid() {
			response.Error(c, apperror.Wrap(apperror.ErrInvalidInput, "Estado inválido"))
			return
		}
		estado = &e
	}

	solicitudes, err := h.service.ListByCategoria(c.Request.Context(), categoria, estado)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, solicitudes)
}

func (h *SolicitudHandler) ActualizarEstado(c *gin.Context) {
	categoria := model.Categoria(c.Param("categoria"))
	if !categoria.Valid() {
		response.Error(c, apperror.ErrNotFound)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound)
		return
	}

	var input dto.ActualizarEstadoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.ActualizarEstado(c.Request.Context(), categoria, id, input); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estado": input.Estado})
}
