package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/application/service"
	"github.com/sangkips/smartventory-api/internal/config"
	"github.com/sangkips/smartventory-api/internal/domain/billing"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/internal/infrastructure/database"
	"github.com/sangkips/smartventory-api/internal/infrastructure/repository"
	"github.com/sangkips/smartventory-api/internal/presentation/http/handler"
	"github.com/sangkips/smartventory-api/internal/presentation/http/middleware"
	"github.com/sangkips/smartventory-api/internal/presentation/http/routes"
	"github.com/sangkips/smartventory-api/pkg/logger"
	"github.com/sangkips/smartventory-api/pkg/notify"
	"github.com/sangkips/smartventory-api/pkg/pdf"
	"github.com/sangkips/smartventory-api/pkg/printer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	whatsAppDelay       = 1500 * time.Millisecond
	draftCleanupEvery   = 10 * time.Minute
	idempotencyPurgeTTL = time.Hour
	shutdownTimeout     = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc := cfg.App.Location()

	// Connect to database
	db, err := database.Open(&cfg.Database, zl)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	settingsStore := repository.NewSettingsStore(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	billRepo := newBillRepository(cfg.Billing.Store, db)

	if cfg.Database.SeedSamples {
		if err := database.SeedCatalog(ctx, catalogRepo, zl); err != nil {
			zl.Warn("failed to seed catalog", zap.Error(err))
		}
		if err := database.SeedBills(ctx, billRepo, time.Now().In(loc), zl); err != nil {
			zl.Warn("failed to seed bills", zap.Error(err))
		}
	}

	// Initialize services
	settingsService := service.NewSettingsService(settingsStore)
	catalogService := service.NewCatalogService(catalogRepo, cfg.Catalog.LowStockThreshold)
	billService := service.NewBillService(billRepo, loc)
	reportService := service.NewReportService(billRepo, catalogRepo, cfg.Catalog.LowStockThreshold, loc)

	engine := billing.NewEngine(billRepo, newNumberer(cfg.Billing.Numbering, db))
	billingService := service.NewBillingService(engine, catalogRepo, settingsService, zl, service.BillingOptions{
		StrictQuantity: cfg.Billing.StrictQuantity,
		DraftTTL:       cfg.Billing.DraftTTL,
		Location:       loc,
	})

	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zl.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billService, settingsService, cfg.Printer.CharWidth, zl)

	documentService := service.NewDocumentService(pdf.NewRenderer(), billService, settingsService, catalogRepo)
	senders := newSenders(cfg, zl)
	shareService := service.NewShareService(senders, documentService, billService, settingsService, zl)
	backupService := service.NewBackupService(settingsService, billRepo, catalogRepo, repository.NewDataResetter(db), cfg.Backup.Dir, zl)
	alertService := service.NewAlertService(settingsStore, catalogRepo, reportService, settingsService, senders, zl, service.AlertOptions{
		LowStockThreshold: cfg.Catalog.LowStockThreshold,
		SummaryHour:       cfg.Alerts.SummaryHour,
		Location:          loc,
	})

	// Background maintenance
	go billingService.RunCleanup(ctx, draftCleanupEvery)
	go purgeIdempotencyKeys(ctx, idempotencyRepo, zl)
	go backupService.RunAutoBackup(ctx, cfg.Backup.CheckInterval)
	go alertService.RunScheduler(ctx, cfg.Alerts.CheckInterval)

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	go rateLimiter.Run(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Draft:    handler.NewDraftHandler(billingService),
		Bill:     handler.NewBillHandler(billService, documentService, printerService, shareService),
		Report:   handler.NewReportHandler(reportService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
		Backup:   handler.NewBackupHandler(settingsService, backupService),
		Alert:    handler.NewAlertHandler(alertService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          zl,
		RateLimiter:     rateLimiter,
		Metrics:         middleware.NewMetrics(strings.ReplaceAll(cfg.App.Name, "-", "_")),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server",
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("bill_store", cfg.Billing.Store),
			zap.String("numbering", cfg.Billing.Numbering),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newBillRepository picks where saved bills live. "keyvalue" keeps the whole
// history as one JSON document.
func newBillRepository(kind string, db *gorm.DB) domainRepo.BillRepository {
	if kind == "keyvalue" {
		return repository.NewKeyValueBillStore(db)
	}
	return repository.NewBillRepository(db)
}

func newNumberer(kind string, db *gorm.DB) billing.Numberer {
	if kind == "daily-sequence" {
		return billing.NewSequenceNumberer(repository.NewBillSequenceRepository(db))
	}
	return billing.NewRandomNumberer(nil)
}

// newSenders registers only the channels enabled in config
func newSenders(cfg *config.Config, zl *zap.Logger) *notify.Registry {
	var senders []notify.Sender
	// SHARE_CHANNELS may arrive as "whatsapp,email" from the environment
	for _, ch := range strings.Split(strings.Join(cfg.Share.Channels, ","), ",") {
		switch strings.ToLower(strings.TrimSpace(ch)) {
		case notify.ChannelWhatsApp:
			senders = append(senders, notify.NewWhatsAppSimulator(zl, whatsAppDelay))
		case notify.ChannelEmail:
			senders = append(senders, notify.NewEmailSender(notify.EmailConfig{
				SMTPHost:     cfg.Email.SMTPHost,
				SMTPPort:     cfg.Email.SMTPPort,
				SMTPUsername: cfg.Email.SMTPUsername,
				SMTPPassword: cfg.Email.SMTPPassword,
				FromName:     cfg.Email.FromName,
				FromEmail:    cfg.Email.FromEmail,
			}))
		case "":
		default:
			zl.Warn("ignoring unknown share channel", zap.String("channel", ch))
		}
	}
	return notify.NewRegistry(senders...)
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, zl *zap.Logger) {
	ticker := time.NewTicker(idempotencyPurgeTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				zl.Warn("failed to purge idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				zl.Debug("purged idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
