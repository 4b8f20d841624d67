package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/config"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/internal/presentation/http/handler"
	"github.com/sangkips/smartventory-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Draft    *handler.DraftHandler
	Bill     *handler.BillHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
	Backup   *handler.BackupHandler
	Alert    *handler.AlertHandler
}

// Deps holds shared dependencies needed by the routes. RateLimiter and
// Metrics are optional.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
	RateLimiter     *middleware.ClientRateLimiter
	Metrics         *middleware.Metrics
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.RateLimiter != nil {
			body["rate_limiter"] = deps.RateLimiter.Stats()
		}
		c.JSON(http.StatusOK, body)
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		registerCatalogRoutes(v1, h)
		registerDraftRoutes(v1, h, deps)
		registerBillRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerSettingsRoutes(v1, h)
		registerPrinterRoutes(v1, h)
		registerAlertRoutes(v1, h)
	}

	return router
}

func registerCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("", h.Catalog.List)
		catalog.POST("", h.Catalog.Create)
		catalog.GET("/search", h.Catalog.Search)
		catalog.GET("/categories", h.Catalog.Categories)
		catalog.GET("/low-stock", h.Catalog.LowStock)
		catalog.GET("/:id", h.Catalog.Get)
		catalog.PUT("/:id", h.Catalog.Update)
		catalog.DELETE("/:id", h.Catalog.Delete)
	}
}

func registerDraftRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	drafts := rg.Group("/drafts")
	{
		drafts.POST("", h.Draft.Create)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Discard)
		drafts.POST("/:id/lines", h.Draft.AddLine)
		drafts.PATCH("/:id/lines/:itemId", h.Draft.UpdateLine)
		drafts.DELETE("/:id/lines/:itemId", h.Draft.RemoveLine)

		save := []gin.HandlerFunc{}
		if deps.IdempotencyRepo != nil {
			save = append(save, middleware.Idempotency(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
				TTL:  deps.Cfg.Idempotency.TTL,
			}))
		}
		save = append(save, h.Draft.Save)
		drafts.POST("/:id/save", save...)
	}
}

func registerBillRoutes(rg *gin.RouterGroup, h *Handlers) {
	bills := rg.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/share-channels", h.Bill.ShareChannels)
		bills.GET("/:number", h.Bill.Get)
		bills.GET("/:number/pdf", h.Bill.PDF)
		bills.POST("/:number/print", h.Bill.Print)
		bills.POST("/:number/share", h.Bill.Share)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/reports/summary", h.Report.Summary)
}

func registerSettingsRoutes(rg *gin.RouterGroup, h *Handlers) {
	settings := rg.Group("/settings")
	{
		settings.GET("/store", h.Settings.GetStoreSettings)
		settings.PUT("/store", h.Settings.UpdateStoreSettings)
		settings.GET("/tax", h.Settings.GetTaxSettings)
		settings.PUT("/tax", h.Settings.UpdateTaxSettings)
		settings.GET("/backup", h.Backup.GetSettings)
		settings.PUT("/backup", h.Backup.UpdateSettings)
		settings.POST("/backup/export", h.Backup.Export)
		settings.POST("/reset", h.Backup.Reset)
	}
}

func registerAlertRoutes(rg *gin.RouterGroup, h *Handlers) {
	alerts := rg.Group("/alerts")
	{
		alerts.GET("/settings", h.Alert.GetSettings)
		alerts.PUT("/settings", h.Alert.UpdateSettings)
		alerts.POST("/connect", h.Alert.Connect)
		alerts.POST("/disconnect", h.Alert.Disconnect)
		alerts.POST("/low-stock", h.Alert.SendLowStock)
		alerts.POST("/summary/:period", h.Alert.SendSummary)
	}
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
