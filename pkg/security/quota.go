package security

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const quotaKeyPrefix = "interview_prep:model_quota:"

// ModelQuota 按客户端限制调用模型的次数，计数保存在 Redis 中，多实例共享。
// rdb 为 nil 或 limit<=0 时直接放行。
func ModelQuota(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := quotaKeyPrefix + quotaSubject(c)
		count, err := incrWindow(c.Request.Context(), rdb, key, window)
		if err != nil {
			// Redis 不可用时不阻断请求
			c.Next()
			return
		}

		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-Model-Quota-Remaining", fmt.Sprint(remaining))

		if int(count) > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "model call quota exceeded",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}

// 已登录用户按用户计数，匿名请求按 IP
func quotaSubject(c *gin.Context) string {
	if id, ok := c.Get("userID"); ok {
		return fmt.Sprintf("user:%v", id)
	}
	return "ip:" + c.ClientIP()
}

// incrWindow 固定窗口计数：首次计数时设置过期时间
func incrWindow(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, error) {
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
