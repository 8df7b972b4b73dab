package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/events"
	"github.com/stitchcart/ecommerce-api/models"
	"github.com/stitchcart/ecommerce-api/routes"
	"github.com/stitchcart/ecommerce-api/services"
)

func main() {
	log.Println("Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Seller{},
		&models.Otp{},
		&models.Category{},
		&models.Size{},
		&models.Colour{},
		&models.Product{},
		&models.SizeInventory{},
		&models.ColourInventory{},
		&models.ProductImage{},
		&models.ProductReview{},
		&models.ProductReviewImage{},
		&models.CouponCode{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Country{},
		&models.Address{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20 // 8 MiB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	// Optional redis for the ratings cache
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		log.Printf("Ratings cache backed by redis at %s", addr)
	}
	cache := services.NewRatingsCache(redisClient)

	// Optional AMQP publisher for order events
	var publisher events.Publisher = events.NoopPublisher{}
	if url := os.Getenv("AMQP_URL"); url != "" {
		rabbit, err := events.NewRabbitPublisher(url, "ecommerce.events")
		if err != nil {
			log.Fatalf("AMQP connection failed: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Println("Order events published to RabbitMQ")
	}

	accounts := services.NewAccountService(services.NewGormAccountRepository(db))
	orders := services.NewOrderService(services.NewGormOrderRepository(db), publisher)

	// Setup routes
	routes.SetupRoutes(r, db, accounts, orders, cache)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}
