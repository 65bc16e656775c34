package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GOALLINNOOUT/backend/models"
)

var (
	// ShopDB is the raw pgx pool, used for append-only log writes.
	ShopDB *pgxpool.Pool

	// ShopGorm is the ORM handle used by controllers and services.
	ShopGorm *gorm.DB
)

func InitDB() {
	initPgx()
	initGORM()
}

func initPgx() {
	shopURL := os.Getenv("SHOP_DB_URL")
	if shopURL == "" {
		shopURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/velora_shop?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ SHOP_DB_URL not set, using local default")
	}

	var err error
	ShopDB, err = pgxpool.New(context.Background(), shopURL)
	if err != nil {
		log.Fatalf("❌ Unable to connect to shop database: %v", err)
	}

	if err = ShopDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Shop database ping failed: %v", err)
	}

	log.Println("✅ Shop database connected (pgx)")
}

func initGORM() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var shopDSN string
	if os.Getenv("SHOP_DB_URL") != "" {
		shopDSN = os.Getenv("SHOP_DB_URL")
	} else {
		shopDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=velora_shop port=%s sslmode=disable TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ SHOP_DB_URL not set, using local GORM default")
	}

	var err error
	ShopGorm, err = gorm.Open(postgres.Open(shopDSN), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to shop database with GORM: %v", err)
	}
	if sqlDB, err := ShopGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Shop database connected (GORM)")
}

// MigrateDB creates or updates the schema for every model.
// Called from cmd/seed, and from main when AUTO_MIGRATE=true.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Perfume{},
		&models.Order{},
		&models.Review{},
		&models.SessionLog{},
		&models.PageViewLog{},
		&models.CartActionLog{},
		&models.CheckoutEventLog{},
		&models.SecurityLog{},
	)
}

func CloseDB() {
	if ShopDB != nil {
		ShopDB.Close()
		log.Println("✅ Shop database connection closed (pgx)")
	}
	if ShopGorm != nil {
		sqlDB, _ := ShopGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Shop database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout for DB calls.
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
