package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"rentledger/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Transaction summary caching
	GetPaymentSummary(ctx context.Context) (*models.PaymentSummary, error)
	SetPaymentSummary(ctx context.Context, summary *models.PaymentSummary, ttl time.Duration) error
	DeletePaymentSummary(ctx context.Context) error

	// Tenant detail caching
	GetTenantDetail(ctx context.Context, tenantID uuid.UUID, dest any) (bool, error)
	SetTenantDetail(ctx context.Context, tenantID uuid.UUID, detail any, ttl time.Duration) error
	DeleteTenantDetail(ctx context.Context, tenantID uuid.UUID) error

	// Cache invalidation
	InvalidateAllCache(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

const summaryKey = "rentledger:transaction:summary"

func tenantDetailKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("rentledger:tenant:detail:%s", tenantID.String())
}

func (r *redisCacheService) GetPaymentSummary(ctx context.Context) (*models.PaymentSummary, error) {
	data, err := r.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.PaymentSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetPaymentSummary(ctx context.Context, summary *models.PaymentSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, summaryKey, data, ttl).Err()
}

func (r *redisCacheService) DeletePaymentSummary(ctx context.Context) error {
	return r.client.Del(ctx, summaryKey).Err()
}

func (r *redisCacheService) GetTenantDetail(ctx context.Context, tenantID uuid.UUID, dest any) (bool, error) {
	data, err := r.client.Get(ctx, tenantDetailKey(tenantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetTenantDetail(ctx context.Context, tenantID uuid.UUID, detail any, ttl time.Duration) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantDetailKey(tenantID), data, ttl).Err()
}

func (r *redisCacheService) DeleteTenantDetail(ctx context.Context, tenantID uuid.UUID) error {
	return r.client.Del(ctx, tenantDetailKey(tenantID)).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "rentledger:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
