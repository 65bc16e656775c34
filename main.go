package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/middleware"
	"github.com/GOALLINNOOUT/backend/routes/cms_routes"
	"github.com/GOALLINNOOUT/backend/routes/ecommerce_routes"
	"github.com/GOALLINNOOUT/backend/services"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	// Redis connection
	config.ConnectRedis()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := config.MigrateDB(config.ShopGorm); err != nil {
			log.Fatalf("❌ Auto-migration failed: %v", err)
		}
		log.Println("✅ Database schema migrated")
	}

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With", "X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Session liveness + passive page-view capture run ahead of every route
	router.Use(middleware.UpdateLastActivity())
	router.Use(middleware.PageViewLogger())

	api := router.Group("/api")

	// Public tracking + storefront
	ecommerce_routes.SetupTrackRoutes(api)
	ecommerce_routes.SetupStorefrontRoutes(api)
	log.Println("✅ Storefront routes registered")

	// CMS routes (at /api/admin prefix, admin-gated)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())

	cms_routes.SetupPerfumeRoutes(adminGroup)
	cms_routes.SetupOrderRoutes(adminGroup)
	cms_routes.SetupCustomerRoutes(adminGroup)
	cms_routes.SetupAnalyticsRoutes(adminGroup)
	log.Println("✅ Admin routes registered")

	// Background sweeper closes sessions that went quiet
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go services.GetSweeperService().Run(sweepCtx, services.DefaultSweepInterval)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⚠️ Shutting down...")

	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}

	config.CloseDB()
	log.Println("✅ Server stopped")
}
