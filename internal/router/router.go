package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/api"
	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps api.Dependencies, log *zap.Logger) *gin.Engine {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = service.MaxImageSize + 1<<20

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.NoRoute(api.NoRoute)
	router.NoMethod(api.NoMethod)

	api.RegisterRoutes(router.Group("/api"), deps)

	// Uploaded images are served by the app itself only with local storage.
	if cfg.StorageBackend == config.StorageLocal && strings.HasPrefix(cfg.MediaURL, "/") {
		prefix := strings.TrimRight(cfg.MediaURL, "/")
		files := middleware.ErrorHandler(http.StripPrefix(prefix, noDirectoryListing(http.FileServer(http.Dir(cfg.MediaRoot)))), log)
		router.GET(prefix+"/*filepath", gin.WrapH(files))
		router.HEAD(prefix+"/*filepath", gin.WrapH(files))
	}

	return router
}

func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
