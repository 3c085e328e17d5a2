package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"querynest/config"
	"querynest/controllers"
	"querynest/db"
	"querynest/middlewares"
	"querynest/routes"
	"querynest/services"
	"querynest/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local overrides; the YAML file is the source of truth
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancelIndexes()

	store := db.NewStore(db.MongoClient, db.MongoDatabase)

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWT.Expiry)
	utils.InitEmail(cfg)

	controllers.Init(store, cfg)
	services.InitScoringService(store, cfg)
	services.InitLeaderboardService(store)
	services.InitCleanupService(store)

	scheduler := startScheduledJobs(cfg)
	defer func() { _ = scheduler.Shutdown() }()

	router := setupRouter()
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// startScheduledJobs runs the periodic leaderboard regeneration and the
// unverified-user cleanup sweep.
func startScheduledJobs(cfg *config.Config) gocron.Scheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(cfg.Jobs.LeaderboardEveryMinutes)*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := services.GetLeaderboardService().GenerateAll(ctx, 0, 0); err != nil {
				if !errors.Is(err, services.ErrNoProfiles) {
					log.Printf("Leaderboard generation failed: %v", err)
				}
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule leaderboard job: %v", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(cfg.Jobs.CleanupEveryMinutes)*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			services.GetCleanupService().RemoveExpiredUnverifiedUsers(ctx)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}

	scheduler.Start()
	return scheduler
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Public routes for authentication
	router.POST("/register", routes.RegisterRouteHandler)
	router.POST("/verifyOTP", routes.VerifyOTPRouteHandler)
	router.POST("/resendOTP", routes.ResendOTPRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.POST("/forgotPassword", routes.ForgotPasswordRouteHandler)
	router.POST("/verifyPasscode", routes.VerifyPasscodeRouteHandler)
	router.POST("/resetPassword", routes.ResetPasswordRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		routes.SetupProfileRoutes(auth)
		routes.SetupQuestionRoutes(auth)
		routes.SetupAnswerRoutes(auth)
		routes.SetupTagRoutes(auth)

		auth.POST("/leaderboard/generate", routes.GenerateLeaderboardsRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)
	}

	return router
}
