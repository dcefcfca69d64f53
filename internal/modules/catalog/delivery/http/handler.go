package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sntsa.mx/becas/internal/modules/catalog/service"
	"sntsa.mx/becas/pkg/response"
)

type CatalogoHandler struct {
	service service.CatalogoService
}

func NewCatalogoHandler(service service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{service: service}
}

func (h *CatalogoHandler) GetCatalogos(c *gin.Context) {
	catalogos, err := h.service.GetCatalogos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, catalogos)
}
