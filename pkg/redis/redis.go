package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

const dietPlanKeyPrefix = "diet:plan:"

var ErrCacheMiss = errors.New("cache miss")

type IRedis interface {
	SetDietPlan(ctx context.Context, fingerprint string, plan string, expiration time.Duration) error
	GetDietPlan(ctx context.Context, fingerprint string) (string, error)
	DeleteDietPlan(ctx context.Context, fingerprint string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewWithClient(client)
}

func NewWithClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

func (r *redisClient) SetDietPlan(ctx context.Context, fingerprint string, plan string, expiration time.Duration) error {
	key := dietPlanKeyPrefix + fingerprint
	logrus.Debug(fmt.Sprintf("Caching diet plan for key %s with expiration %v", key, expiration))
	if err := r.client.Set(ctx, key, plan, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching diet plan for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetDietPlan(ctx context.Context, fingerprint string) (string, error) {
	key := dietPlanKeyPrefix + fingerprint
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Diet plan not cached for key %s", key))
		return "", ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting diet plan for key %s: %v", key, err))
		return "", err
	}
	logrus.Debug(fmt.Sprintf("Diet plan cache hit for key %s", key))
	return val, nil
}

func (r *redisClient) DeleteDietPlan(ctx context.Context, fingerprint string) error {
	key := dietPlanKeyPrefix + fingerprint
	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting diet plan for key %s: %v", key, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Diet plan key %s not found for deletion", key))
	}

	return nil
}
