package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/qrleads/internal/auth"
	"github.com/xavierca1/qrleads/internal/config"
	"github.com/xavierca1/qrleads/internal/infra/cache"
	"github.com/xavierca1/qrleads/internal/infra/database"
	"github.com/xavierca1/qrleads/internal/infra/http/handlers"
	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
	"github.com/xavierca1/qrleads/internal/infra/integration/kommo"
	"github.com/xavierca1/qrleads/internal/infra/mail"
	"github.com/xavierca1/qrleads/internal/infra/qrcode"
	"github.com/xavierca1/qrleads/internal/infra/queue"
	"github.com/xavierca1/qrleads/internal/infra/worker"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/usecase"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// 1. Repositórios
	campaignRepo := database.NewCampaignRepository(db)
	pageRepo := database.NewLandingPageRepository(db)
	leadRepo := database.NewLeadRepository(db)
	consultantRepo := database.NewConsultantRepository(db)
	vehicleRepo := database.NewVehicleRepository(db)
	qrRepo := database.NewQRCodeRepository(db)

	// 2. Infra opcional: cache de páginas e fila
	var pageCache cache.PageCache = cache.NoopPageCache{}
	if cfg.UseRedis() {
		redisCache, err := cache.NewRedisPageCache(ctx, cfg.RedisURL, cfg.PageCacheTTL)
		if err != nil {
			slog.Warn("redis unavailable, page cache disabled", "error", err)
		} else {
			defer redisCache.Close()
			pageCache = redisCache
		}
	}

	var (
		rabbit      *queue.RabbitMQ
		queueStatus handlers.QueueStatus
		producer    usecase.QueueProducerInterface
	)
	if cfg.UseRabbitMQ() {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		queueStatus = rabbit
		producer = queue.NewProducer(rabbit.Ch)
	} else {
		slog.Warn("RABBITMQ_URL not set, lead notifications stay pending")
	}

	// 3. UseCases
	renderer := landing.MustNewRenderer()
	qrGen := qrcode.NewGenerator()

	notifyUC := &usecase.NotifyLeadUseCase{
		Leads:             leadRepo,
		Campaigns:         campaignRepo,
		Pages:             pageRepo,
		Vehicles:          vehicleRepo,
		Queue:             producer,
		FallbackRecipient: cfg.ConsultantEmail,
		Now:               time.Now,
	}
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, campaignRepo, pageRepo, vehicleRepo, notifyUC)
	updatePageUC := usecase.NewUpdateLandingPageUseCase(pageRepo, pageCache)

	// 4. Workers
	if rabbit != nil {
		consumerCh, err := rabbit.Conn.Channel()
		if err != nil {
			return err
		}
		defer consumerCh.Close()

		var mailer queue.LeadMailer = meteredMailer{next: mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)}
		if !cfg.MailEnabled() {
			slog.Warn("MAIL_HOST not set, notifications go to the dead letter queue")
		}
		if cfg.KommoEnabled() {
			mailer = crmExporter{next: mailer, crm: kommo.NewClient(cfg.KommoBaseURL, cfg.KommoToken, cfg.KommoStatusID)}
		}
		w := queue.NewWorker(consumerCh, mailer, slog.Default())
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				slog.Error("lead notification worker exited", "error", err)
			}
		}()
		go worker.NewNotificationSweeper(leadRepo, notifyUC, cfg.SweepInterval, cfg.SweepGrace).Start(ctx)
	}

	limiter := middleware.NewRateLimiter(cfg.LeadRateLimit, cfg.LeadRateBurst, 10*time.Minute)
	go limiter.Run(5*time.Minute, ctx.Done())

	// 5. Handlers
	tokens := auth.NewTokens(cfg.JWTSecret)
	h := routeHandlers{
		auth: handlers.NewAuthHandler(auth.Credentials{
			Email:        cfg.AdminEmail,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
		}, tokens, !cfg.IsDevelopment()),
		dashboard:   handlers.NewDashboardHandler(campaignRepo, pageRepo),
		campaigns:   handlers.NewCampaignHandler(usecase.NewCreateCampaignUseCase(campaignRepo), campaignRepo),
		pages:       handlers.NewLandingPageHandler(usecase.NewCreateLandingPageUseCase(pageRepo, campaignRepo), updatePageUC, pageRepo),
		editor:      handlers.NewEditorHandler(usecase.NewEditLandingPageUseCase(pageRepo, updatePageUC, renderer), pageRepo, renderer),
		public:      handlers.NewPublicLandingHandler(pageRepo, renderer, captureUC, pageCache),
		leads:       handlers.NewLeadHandler(captureUC, leadRepo),
		consultants: handlers.NewConsultantHandler(consultantRepo),
		vehicles: handlers.NewVehicleHandler(
			usecase.NewCreateVehicleUseCase(vehicleRepo, consultantRepo, qrGen, cfg.AppURL),
			&usecase.UpdateVehicleUseCase{Repo: vehicleRepo, Consultants: consultantRepo},
			vehicleRepo, renderer, captureUC,
		),
		qr:     handlers.NewQRCodeHandler(usecase.NewCreateQRCodeUseCase(qrRepo, campaignRepo, vehicleRepo, qrGen, cfg.AppURL), qrRepo),
		health: handlers.NewHealthHandler(db, queueStatus, version),
	}
	r := newRouter(cfg, tokens, limiter, h)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
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

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
