package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mwhitaker/daytripper/internal/models"
)

// Cache stores assembled trip lists per search criteria. Offers are priced
// in near-real time, so entries carry a short TTL.
type Cache interface {
	Get(ctx context.Context, criteria models.SearchCriteria) ([]models.Trip, bool)
	Set(ctx context.Context, criteria models.SearchCriteria, trips []models.Trip) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, criteria models.SearchCriteria) ([]models.Trip, bool) {
	data, err := c.client.Get(ctx, Key(criteria)).Bytes()
	if err != nil {
		return nil, false
	}

	var trips []models.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, false
	}
	return trips, true
}

func (c *RedisCache) Set(ctx context.Context, criteria models.SearchCriteria, trips []models.Trip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(criteria), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, criteria models.SearchCriteria) ([]models.Trip, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, criteria models.SearchCriteria, trips []models.Trip) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key hashes everything that affects the result set; it doubles as the
// singleflight key in the handler.
func Key(criteria models.SearchCriteria) string {
	keyData := struct {
		Origin       string
		Date         string
		ReturnDate   string
		DepartWindow [2]int
		ArriveWindow [2]int
		MinGround    float64
		Duration     [2]int
		MaxConns     int
		Destinations string
		Carriers     string
	}{
		Origin:       strings.ToUpper(criteria.Origin),
		Date:         criteria.Date,
		DepartWindow: [2]int{criteria.EarliestDepartHour, criteria.LatestDepartHour},
		ArriveWindow: [2]int{criteria.EarliestArriveHour, criteria.LatestArriveHour},
		MinGround:    criteria.MinGroundTimeHours,
		Duration:     [2]int{criteria.MinDurationMinutes, criteria.MaxDurationMinutes},
		MaxConns:     criteria.MaxConnections,
		Destinations: strings.ToUpper(strings.Join(criteria.Destinations, ",")),
		Carriers:     strings.ToUpper(strings.Join(criteria.Carriers, ",")),
	}
	if criteria.ReturnDate != nil {
		keyData.ReturnDate = *criteria.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "trips:" + hex.EncodeToString(hash[:])
}
