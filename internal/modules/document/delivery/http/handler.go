package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/response"
	"sntsa.mx/becas/pkg/storage"
)

type DocumentoHandler struct {
	storage storage.DocumentStorage
}

func NewDocumentoHandler(documentStorage storage.DocumentStorage) *DocumentoHandler {
	return &DocumentoHandler{storage: documentStorage}
}

// Descargar streams a stored document to staff. A path that escapes the media
// root and a path that points at nothing get the exact same response, so the
// caller cannot probe the filesystem layout.
func (h *DocumentoHandler) Descargar(c *gin.Context) {
	relPath := c.Param("filepath")

	fullPath, err := h.storage.Resolve(relPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotAvailable) {
			c.JSON(http.StatusForbidden, gin.H{"error": apperror.ErrForbidden.Error()})
			return
		}
		response.Error(c, err)
		return
	}

	c.File(fullPath)
}
