package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go/v7"

	"event-system/config"
	"event-system/handlers"
	_ "event-system/migrations"
	"event-system/monitoring"
	"event-system/security"
	"event-system/services"
	"event-system/store"
	"event-system/utils"
)

func main() {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PubNubUserID))
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	// Initialize persistence and collaborators
	st := store.New(app)
	notifier := services.NewPubNubNotifier(pn)
	mailService := services.NewMailService(st, app, cfg.MailDispatchBatch)
	monitor := monitoring.NewMonitor(redisClient, st)

	var generator services.ContentGenerator
	if cfg.ContentGeneratorURL != "" {
		generator = services.NewHTTPGenerator(cfg.ContentGeneratorURL, cfg.ContentGeneratorTimeout)
	} else {
		generator = services.NewTemplateGenerator()
	}

	// Initialize services
	registrationService := services.NewRegistrationService(st, mailService, notifier, monitor)
	paymentService := services.NewPaymentService(st, mailService, generator, notifier, monitor)
	attendanceService := services.NewAttendanceService(st, monitor)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(st)
	registrationHandler := handlers.NewRegistrationHandler(st, registrationService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)

	limiter := security.NewRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitThreshold)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Drain the mail queue once a minute
	app.Cron().MustAdd("mailQueueDispatch", "* * * * *", func() {
		mailService.Dispatch()
	})

	// Expose Prometheus metrics on a separate port
	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Event endpoints
		e.Router.POST("/api/events", eventHandler.Create)
		e.Router.GET("/api/events", eventHandler.List)
		e.Router.POST("/api/events/{eventId}/tickets", eventHandler.CreateTicket)
		e.Router.GET("/api/events/{eventId}/tickets", eventHandler.ListTickets)

		// Registration endpoints
		e.Router.POST("/api/events/{eventId}/register", registrationHandler.Register).
			BindFunc(limiter.AntiBotFilter()).
			BindFunc(limiter.RegistrationLimit())
		e.Router.GET("/api/events/{eventId}/registrations", registrationHandler.List)

		// Payment endpoints
		e.Router.POST("/api/events/{eventId}/payments", paymentHandler.Create)
		e.Router.GET("/api/events/{eventId}/payments/{paymentId}", paymentHandler.Get)
		e.Router.PATCH("/api/events/{eventId}/payments/{paymentId}/status", paymentHandler.UpdateStatus)

		// Attendance endpoints
		e.Router.PATCH("/api/registrations/{registrationId}/attendance", attendanceHandler.UpdateStatus)
		e.Router.POST("/api/registrations/{registrationId}/checkin", attendanceHandler.CheckIn)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			if err := st.Health(); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
