package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/model"
	workerRepo "sntsa.mx/becas/internal/modules/worker/repository"
)

// GuardMiddleware holds the worker-profile gates applied in front of every
// scholar and application mutation.
type GuardMiddleware struct {
	trabajadorRepo workerRepo.TrabajadorRepository
}

func NewGuardMiddleware(trabajadorRepo workerRepo.TrabajadorRepository) *GuardMiddleware {
	return &GuardMiddleware{trabajadorRepo: trabajadorRepo}
}

// RequireWorker routes callers without a worker profile to the profile
// creation flow. Not an error: the response is a redirect signal.
func (m *GuardMiddleware) RequireWorker() gin.HandlerFunc {
	return func(c *gin.Context) {
		trabajador, done := m.lookup(c)
		if done {
			return
		}

		c.Set("trabajador", trabajador)
		c.Next()
	}
}

// RequireApproved short-circuits to the pending-verification response while
// the worker profile awaits staff approval. A missing profile behaves like a
// RequireWorker failure.
func (m *GuardMiddleware) RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		trabajador, done := m.lookup(c)
		if done {
			return
		}

		if !trabajador.Aprobado {
			c.JSON(http.StatusOK, gin.H{
				"estado":  "espera_verificacion",
				"mensaje": "Tu perfil está en espera de verificación por un administrador",
			})
			c.Abort()
			return
		}

		c.Set("trabajador", trabajador)
		c.Next()
	}
}

// lookup resolves the caller's worker profile. A true second return means the
// request was already answered (redirect, terminal page or error) and the
// handler chain must not continue.
func (m *GuardMiddleware) lookup(c *gin.Context) (*model.Trabajador, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		// Authentication is enforced upstream; nothing to guard here.
		c.Next()
		return nil, true
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		c.Abort()
		return nil, true
	}

	trabajador, err := m.trabajadorRepo.FindByUsuarioID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusSeeOther, gin.H{"redirect": "/create_trabajador"})
			c.Abort()
			return nil, true
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		c.Abort()
		return nil, true
	}

	return trabajador, false
}
