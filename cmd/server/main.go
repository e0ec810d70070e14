package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mwhitaker/daytripper/internal/cache"
	"github.com/mwhitaker/daytripper/internal/handler"
	"github.com/mwhitaker/daytripper/internal/providers"
	"github.com/mwhitaker/daytripper/internal/ratelimit"
	"github.com/mwhitaker/daytripper/internal/routeopt"
	"github.com/mwhitaker/daytripper/internal/search"
)

type Config struct {
	Port         string
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration

	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string

	ORSAPIKey string

	BatchSize  int
	BatchDelay time.Duration
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := loadConfig()

	if cfg.AmadeusClientID == "" || cfg.AmadeusClientSecret == "" {
		log.Fatal("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required")
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewProviderLimiterWithDefaults()
	rateLimiter.SetProviderLimit("amadeus", 10, 10)
	rateLimiter.SetProviderLimit("ors", 2, 4)

	amadeus := providers.NewAmadeusClient(providers.AmadeusConfig{
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		BaseURL:      cfg.AmadeusBaseURL,
	}, rateLimiter)

	orchestrator := search.NewOrchestrator(amadeus, amadeus, search.Config{
		BatchSize:    cfg.BatchSize,
		BatchDelay:   cfg.BatchDelay,
		StreamBuffer: search.DefaultConfig().StreamBuffer,
	})

	var tripCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Printf("Failed to connect to Redis, running without cache: %v", err)
			tripCache = cache.NewNoOpCache()
		} else {
			tripCache = redisCache
			log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
		}
	} else {
		tripCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	searchHandler := handler.NewSearchHandler(orchestrator, tripCache)

	api := e.Group("/api/v1")
	api.POST("/trips/search", searchHandler.Search)
	api.POST("/trips/search/stream", searchHandler.SearchStream)

	if cfg.ORSAPIKey != "" {
		matrix := routeopt.NewORSMatrixProvider(routeopt.ORSConfig{APIKey: cfg.ORSAPIKey}, rateLimiter)
		routeHandler := handler.NewRouteHandler(routeopt.NewOptimizer(matrix))
		api.POST("/routes/plan", routeHandler.Plan)
	} else {
		log.Println("ORS_API_KEY not set; route planning disabled")
	}

	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting same-day trip server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),

		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),

		ORSAPIKey: os.Getenv("ORS_API_KEY"),

		BatchSize:  getEnvInt("SEARCH_BATCH_SIZE", 5),
		BatchDelay: getEnvDuration("SEARCH_BATCH_DELAY", time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
