package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slot-hold-gateway/internal/handler/api"
	"slot-hold-gateway/internal/handler/middleware"
	"slot-hold-gateway/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, workflowHandler *api.WorkflowHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, workflowHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, workflowHandler *api.WorkflowHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		workflows := apiGroup.Group("/workflows")
		{
			addRoutes(workflows, []route{
				{Method: http.MethodPost, Path: "", Handler: workflowHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: workflowHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: workflowHandler.Delete},
				{Method: http.MethodPut, Path: "/:id/selection", Handler: workflowHandler.UpdateSelection},
				{Method: http.MethodGet, Path: "/:id/schedule", Handler: workflowHandler.GetSchedule},
				{Method: http.MethodPost, Path: "/:id/hold", Handler: workflowHandler.AcquireHold},
				{Method: http.MethodDelete, Path: "/:id/hold", Handler: workflowHandler.ReleaseHold},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: workflowHandler.Confirm},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
