package availability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calcom"
)

const (
	keyPrefix = "availability"

	// длина отпечатка API-ключа в hex-символах
	apiKeyFingerprintLength = 16
)

// Cache кэш ответов Cal.com /availability в Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш поверх готового клиента Redis
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// NewRedisClient создает клиента Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, addr, err)
	}

	return client, nil
}

// Get возвращает сохраненный ответ или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, req *calcom.AvailabilityRequest) (*calcom.Availability, error) {
	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var availability calcom.Availability
	if err := json.Unmarshal(data, &availability); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}

	return &availability, nil
}

// Set сохраняет ответ на время ttl
func (c *Cache) Set(ctx context.Context, req *calcom.AvailabilityRequest, availability *calcom.Availability) error {
	data, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, Key(req), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}

	return nil
}

// Key ключ кэша: availability:{username}:{eventTypeId}:{apiKeyHash}:{dateFrom}:{dateTo}
// Запись доступна только запросу с тем же API-ключом, сам ключ хранится как обрезанный SHA-256
// Границы периода округляются до минуты, чтобы соседние запросы попадали в один ключ
func Key(req *calcom.AvailabilityRequest) string {
	return keyPrefix + ":" + req.Username +
		":" + strconv.FormatInt(req.EventTypeID, 10) +
		":" + apiKeyFingerprint(req.APIKey) +
		":" + strconv.FormatInt(req.DateFrom.Truncate(time.Minute).Unix(), 10) +
		":" + strconv.FormatInt(req.DateTo.Truncate(time.Minute).Unix(), 10)
}

func apiKeyFingerprint(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])[:apiKeyFingerprintLength]
}

// NopCache кэш-заглушка, когда Redis отключен
type NopCache struct{}

func (NopCache) Get(context.Context, *calcom.AvailabilityRequest) (*calcom.Availability, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, *calcom.AvailabilityRequest, *calcom.Availability) error {
	return nil
}
