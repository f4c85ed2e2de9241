package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"prestadores-api/docs"
	"prestadores-api/internal/config"
	"prestadores-api/internal/handler"
	"prestadores-api/internal/middleware"
	"prestadores-api/internal/repository"
	"prestadores-api/internal/service"
	"prestadores-api/internal/token"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← MongoDB
func New(cfg *config.Config, client *mongo.Client) *gin.Engine {
	db := client.Database(cfg.MongoDB)
	return newEngine(cfg,
		repository.NewPrestadorRepository(db),
		repository.NewUsuarioRepository(db),
		client,
	)
}

func newEngine(cfg *config.Config, prestadorRepo repository.PrestadorRepository, usuarioRepo repository.UsuarioRepository, pinger handler.Pinger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	tokens := token.NewManager(cfg.SecretKey, cfg.TokenTTL)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, tokens, cfg)
	prestadorSvc := service.NewPrestadorService(prestadorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usuariosH := handler.NewUsuariosHandler(authSvc)
	prestadoresH := handler.NewPrestadoresHandler(prestadorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api")
	api.GET("", handler.Health(pinger))

	authMW := middleware.Auth(tokens)

	usuarios := api.Group("/usuarios")
	{
		usuarios.POST("", usuariosH.Registrar)
		usuarios.POST("/login", usuariosH.Login)
		usuarios.GET("", authMW, usuariosH.Listar)
	}

	// The token is checked before any body is read or validated.
	prestadores := api.Group("/prestadores", authMW)
	{
		prestadores.GET("", prestadoresH.Listar)
		prestadores.GET("/id/:id", prestadoresH.ObterPorID)
		prestadores.GET("/razao/:filtro", prestadoresH.BuscarPorRazao)
		prestadores.POST("", prestadoresH.Criar)
		prestadores.PUT("", prestadoresH.Alterar)
		prestadores.DELETE("/:id", prestadoresH.Excluir)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		docs.SwaggerInfo.BasePath = "/api"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if cfg.PublicDir != "" {
		r.NoRoute(static(cfg.PublicDir))
	}

	return r
}

// static serves the frontend bundle for everything outside /api, falling
// back to index.html for client-side routes.
func static(dir string) gin.HandlerFunc {
	fs := http.Dir(dir)
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || p == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Rota não encontrada"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		if p == "/favicon.ico" {
			if _, err := os.Stat(filepath.Join(dir, "favicon.ico")); err != nil {
				c.Status(http.StatusNoContent)
				return
			}
		}
		if f, err := fs.Open(p); err == nil {
			st, statErr := f.Stat()
			f.Close()
			if statErr == nil && !st.IsDir() {
				c.FileFromFS(p, fs)
				return
			}
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
