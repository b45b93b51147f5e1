package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type OTPRepository struct {
	client *redis.Client
}

func NewOTPRepository(client *redis.Client) *OTPRepository {
	return &OTPRepository{
		client: client,
	}
}

func (r *OTPRepository) StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	key := fmt.Sprintf("otp:email:%s", email)

	if err := r.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp in Redis: %w", err)
	}

	return nil
}

// VerifyOTP compares the submitted code against the stored one and
// consumes it on success so a code cannot be replayed.
func (r *OTPRepository) VerifyOTP(ctx context.Context, email, code string) error {
	key := fmt.Sprintf("otp:email:%s", email)

	stored, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return errors.New("otp not found or expired")
		}
		return fmt.Errorf("failed to get otp from Redis: %w", err)
	}

	if stored != code {
		return errors.New("otp mismatch")
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}

	return nil
}
