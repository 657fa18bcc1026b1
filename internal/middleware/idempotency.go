package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency replays the cached response when a POST carries an
// Idempotency-Key already seen for this route and user. While the first
// request is still in flight a short-lived lock rejects duplicates.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			if cachedRes, ok := decodeCachedResponse(val); ok {
				c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
				return
			}
			// A corrupt cache entry must not be replayed; drop it and
			// let the request run again.
			rdb.Del(c.Request.Context(), cacheKey)
		}

		// Lock expiry bounds how long a crashed request blocks retries.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is still being processed",
			})
			return
		}

		// The handler caches its result under cacheKey and releases the lock.
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

func decodeCachedResponse(val string) (any, bool) {
	var cachedRes any
	if err := json.Unmarshal([]byte(val), &cachedRes); err != nil {
		return nil, false
	}
	return cachedRes, true
}
