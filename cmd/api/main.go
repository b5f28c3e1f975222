package main

import (
	"context"
	"os"
	"time"

	"github.com/anjiri1684/interview_prepper/cache"
	config "github.com/anjiri1684/interview_prepper/configs"
	"github.com/anjiri1684/interview_prepper/database"
	"github.com/anjiri1684/interview_prepper/generator"
	"github.com/anjiri1684/interview_prepper/handlers"
	"github.com/anjiri1684/interview_prepper/jobs"
	applog "github.com/anjiri1684/interview_prepper/logger"
	"github.com/anjiri1684/interview_prepper/metrics"
	"github.com/anjiri1684/interview_prepper/middleware"
	"github.com/anjiri1684/interview_prepper/routes"
	"github.com/anjiri1684/interview_prepper/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	svix "github.com/svix/svix-webhooks/go"
)

func main() {
	cfg := config.Load()
	log := applog.New("interview-prepper", cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Database migration failed")
	}
	log.Info("Database connected and migrated")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gemini, err := generator.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerationTimeout)
	if err != nil {
		log.WithError(err).Fatal("Gemini client setup failed")
	}
	gen := generator.Instrument(gemini, m)

	var historyCache cache.HistoryCache = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisHistoryCache(cfg.RedisURL, cfg.HistoryCacheTTL, log)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, history cache disabled")
		} else {
			defer redisCache.Close()
			historyCache = redisCache
		}
	}

	quotas := services.NewQuotaService(db, services.QuotaOptions{
		DailyQuota: cfg.DailyQuota,
		Location:   cfg.Location(),
	}, log)
	challenges := services.NewChallengeService(db, log)
	answers := services.NewAnswerService(db, challenges, log)
	prep := services.NewPrepService(quotas, challenges, answers, gen, historyCache, m, log)

	var verifier handlers.WebhookVerifier
	if cfg.ClerkWebhookSecret != "" {
		wh, err := svix.NewWebhook(cfg.ClerkWebhookSecret)
		if err != nil {
			log.WithError(err).Fatal("Invalid CLERK_WEBHOOK_SECRET")
		}
		verifier = wh
	} else {
		log.Warn("CLERK_WEBHOOK_SECRET not set, /webhooks/clerk will reject requests")
	}
	h := handlers.New(prep, verifier, log)

	auth, err := middleware.Protected(cfg.ClerkJWTKey, cfg.ClerkAuthorizedParties)
	if err != nil {
		log.WithError(err).Fatal("Invalid CLERK_JWT_KEY")
	}

	c := cron.New(cron.WithLocation(cfg.Location()))
	if _, err := jobs.ScheduleQuotaReset(c, cfg.QuotaResetCron, prep, log); err != nil {
		log.WithError(err).Fatal("Invalid QUOTA_RESET_CRON")
	}
	c.Start()
	defer c.Stop()

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       cfg.AppName,
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler(log),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   cfg.QuotaTimezone,
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		Output:     os.Stdout,
	}))
	app.Use(middleware.Metrics(m))

	routes.PublicRoutes(app, h, cfg.AppName, reg)
	routes.ChallengeRoutes(app, h, auth)
	routes.QuotaRoutes(app, h, auth)
	routes.AnswerRoutes(app, h, auth)
	routes.AdminRoutes(app, h, cfg.AdminAPIKeyHash)

	log.WithField("port", cfg.Port).Info("Server is running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Server failed to start")
	}
}
