package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/achariya/ambassador-backend/internal/config"
	"github.com/achariya/ambassador-backend/internal/database"
	"github.com/achariya/ambassador-backend/internal/handlers"
	"github.com/achariya/ambassador-backend/internal/jobs"
	"github.com/achariya/ambassador-backend/internal/middleware"
	"github.com/achariya/ambassador-backend/internal/queue"
	"github.com/achariya/ambassador-backend/internal/routes"
	"github.com/achariya/ambassador-backend/internal/services/revenue"
	settlementsvc "github.com/achariya/ambassador-backend/internal/services/settlement"
	slabsvc "github.com/achariya/ambassador-backend/internal/services/slab"
	"github.com/achariya/ambassador-backend/internal/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.Expiration)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	jobQueue := queue.NewRedisQueue(redisClient, db)

	// Services
	slabService := slabsvc.NewService(db)
	revenueService := revenue.NewService(db, slabService)

	// Job handlers; the notification job doubles as the settlement notifier
	jobHandlers := jobs.RegisterAllJobHandlers(jobQueue, db, revenueService)
	settlementService := settlementsvc.NewService(db, jobHandlers.Notification)

	// Handlers
	authHandler := handlers.NewAuthHandler(db)
	benefitHandler := handlers.NewBenefitHandler(revenueService)
	slabHandler := handlers.NewSlabHandler(slabService)
	settlementHandler := handlers.NewSettlementHandler(settlementService)
	referralHandler := handlers.NewReferralHandler(db, jobHandlers.Recount)
	campusHandler := handlers.NewCampusHandler(db)

	// Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rateLimiter := middleware.NewRateLimiter(10, 20)
	routes.RegisterRoutes(router, authHandler, benefitHandler, slabHandler,
		settlementHandler, referralHandler, campusHandler, rateLimiter)

	// Background workers and the nightly recount sweep
	worker := queue.NewWorker(jobQueue, 5)
	worker.Start()
	if err := jobs.ScheduleRecurringJobs(worker); err != nil {
		log.Printf("Failed to schedule recurring jobs: %v", err)
	}

	srv := startServer(router, cfg.Server)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	worker.Stop()
	rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// startServer starts the HTTP server
func startServer(router *gin.Engine, serverCfg config.ServerConfig) *http.Server {
	srv := &http.Server{
		Addr:         ":" + serverCfg.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(serverCfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(serverCfg.WriteTimeout) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", serverCfg.Port)
	return srv
}
