package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/config"
	"sntsa.mx/becas/internal/middleware"
	"sntsa.mx/becas/pkg/storage"
	"sntsa.mx/becas/pkg/validator"

	applicationHttp "sntsa.mx/becas/internal/modules/application/delivery/http"
	applicationRepo "sntsa.mx/becas/internal/modules/application/repository"
	applicationService "sntsa.mx/becas/internal/modules/application/service"

	catalogHttp "sntsa.mx/becas/internal/modules/catalog/delivery/http"
	catalogRepo "sntsa.mx/becas/internal/modules/catalog/repository"
	catalogService "sntsa.mx/becas/internal/modules/catalog/service"

	documentHttp "sntsa.mx/becas/internal/modules/document/delivery/http"

	scholarHttp "sntsa.mx/becas/internal/modules/scholar/delivery/http"
	scholarRepo "sntsa.mx/becas/internal/modules/scholar/repository"
	scholarService "sntsa.mx/becas/internal/modules/scholar/service"

	userHttp "sntsa.mx/becas/internal/modules/user/delivery/http"
	userRepo "sntsa.mx/becas/internal/modules/user/repository"
	userService "sntsa.mx/becas/internal/modules/user/service"

	workerHttp "sntsa.mx/becas/internal/modules/worker/delivery/http"
	workerRepo "sntsa.mx/becas/internal/modules/worker/repository"
	workerService "sntsa.mx/becas/internal/modules/worker/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	validator.RegisterCustomTags()

	documentStorage, err := storage.NewLocalStorage(cfg.MediaRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document storage")
	}

	usuarioRepo := userRepo.NewUsuarioRepository(db)
	authSvc := userService.NewAuthService(usuarioRepo, redisClient, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	catalogoRepo := catalogRepo.NewCatalogoRepository(db)
	catalogoSvc := catalogService.NewCatalogoService(catalogoRepo)
	catalogoHandler := catalogHttp.NewCatalogoHandler(catalogoSvc)

	trabajadorRepo := workerRepo.NewTrabajadorRepository(db)
	trabajadorSvc := workerService.NewTrabajadorService(trabajadorRepo, documentStorage)
	trabajadorHandler := workerHttp.NewTrabajadorHandler(trabajadorSvc, catalogoSvc)

	solicitudRepo := applicationRepo.NewSolicitudRepository(db)

	becarioRepo := scholarRepo.NewBecarioRepository(db)
	becarioSvc := scholarService.NewBecarioService(becarioRepo, solicitudRepo, documentStorage)
	becarioHandler := scholarHttp.NewBecarioHandler(becarioSvc)

	solicitudSvc := applicationService.NewSolicitudService(solicitudRepo, becarioRepo, catalogoRepo, documentStorage)
	solicitudHandler := applicationHttp.NewSolicitudHandler(solicitudSvc, becarioSvc, catalogoSvc)

	documentoHandler := documentHttp.NewDocumentoHandler(documentStorage)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	authMiddleware := middleware.NewAuthMiddleware(usuarioRepo, redisClient, cfg.JWTSecret)
	guards := middleware.NewGuardMiddleware(trabajadorRepo)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSec, cfg.AuthRateBurst)

	// Public routes (no auth required)
	router.GET("/signup", authHandler.SignupForm)
	router.POST("/signup", authLimiter.LimitByIP(), authHandler.Signup)
	router.GET("/signin", authHandler.SigninForm)
	router.POST("/signin", authLimiter.LimitByIP(), authHandler.Signin)

	// Protected routes (apply auth middleware explicitly)
	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/signout", authHandler.Signout)

		protected.GET("/catalogos", catalogoHandler.GetCatalogos)

		protected.GET("/create_trabajador", trabajadorHandler.CrearForm)
		protected.POST("/create_trabajador", trabajadorHandler.Crear)

		// Worker-gated routes
		worker := protected.Group("")
		worker.Use(guards.RequireWorker())
		{
			worker.GET("/editar_usuario", trabajadorHandler.EditarForm)
			worker.POST("/editar_usuario", trabajadorHandler.Editar)
		}

		// Approval-gated routes
		approved := protected.Group("")
		approved.Use(guards.RequireApproved())
		{
			approved.GET("/create_becario", becarioHandler.CrearForm)
			approved.POST("/create_becario", becarioHandler.Crear)
			approved.GET("/ver_becarios", becarioHandler.List)
			approved.GET("/editar_becario/:id", becarioHandler.EditarForm)
			approved.POST("/editar_becario/:id", becarioHandler.Editar)

			approved.GET("/create_solicitud_aprovechamiento", solicitudHandler.CrearForm(true))
			approved.POST("/create_solicitud_aprovechamiento", solicitudHandler.CrearAprovechamiento)
			approved.GET("/create_solicitud_excelencia", solicitudHandler.CrearForm(true))
			approved.POST("/create_solicitud_excelencia", solicitudHandler.CrearExcelencia)
			approved.GET("/create_solicitud_especial", solicitudHandler.CrearForm(false))
			approved.POST("/create_solicitud_especial", solicitudHandler.CrearEspecial)
			approved.GET("/ver_solicitudes", solicitudHandler.List)
		}

		// Staff routes
		staff := protected.Group("")
		staff.Use(authMiddleware.RequireStaff())
		{
			staff.GET("/media/*filepath", documentoHandler.Descargar)

			admin := staff.Group("/admin")
			admin.GET("/trabajadores", trabajadorHandler.List)
			admin.PUT("/trabajadores/:id/aprobar", trabajadorHandler.Aprobar)
			admin.GET("/solicitudes/:categoria", solicitudHandler.ListByCategoria)
			admin.PUT("/solicitudes/:categoria/:id/estado", solicitudHandler.ActualizarEstado)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
