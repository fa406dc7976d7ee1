package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voucher-service/internal/handler/api"
	"voucher-service/internal/handler/middleware"
	"voucher-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, voucherHandler *api.VoucherHandler, adminHandler *api.AdminVoucherHandler, adminMiddleware *middleware.AdminMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, voucherHandler, adminHandler, adminMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, voucherHandler *api.VoucherHandler, adminHandler *api.AdminVoucherHandler, adminMiddleware *middleware.AdminMiddleware) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		vouchers := apiGroup.Group("/vouchers")
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodGet, Path: "/active", Handler: voucherHandler.ListActive},
				{Method: http.MethodPost, Path: "/validate", Handler: voucherHandler.Validate},
				{Method: http.MethodPost, Path: "/claim", Handler: voucherHandler.Claim},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(adminMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/vouchers", Handler: adminHandler.Create},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
