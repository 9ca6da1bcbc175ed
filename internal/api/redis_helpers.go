package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// 照片上传按 UTC 自然日计数，键随当日首次上传创建并在 24 小时后过期。
func photoUploadKey(userID uint, day time.Time) string {
	return fmt.Sprintf("photo-uploads:%d:%s", userID, day.UTC().Format("2006-01-02"))
}

func countDailyPhotoUpload(ctx context.Context, client redisRateCounter, userID uint) (int64, error) {
	return incrWithTTL(ctx, client, photoUploadKey(userID, time.Now()), 24*time.Hour)
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
