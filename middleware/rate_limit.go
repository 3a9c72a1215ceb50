package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit counts failed sign-ins per username in Redis and locks
// the username out for LoginCooldown after LoginMaxAttempts failures.
// With a nil client it is a no-op.
func LoginRateLimit(rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		username := loginUsername(c.ContentType(), bodyBytes)
		if username == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "login_attempts:" + username
		cooldownKey := "login_cooldown:" + username

		if ttl, err := rdb.TTL(ctx, cooldownKey).Result(); err == nil && ttl > 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Try again in %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		attempts, err := rdb.Get(ctx, key).Int()
		if err != nil && err != redis.Nil {
			// Fail open: a Redis outage must not lock staff out.
			log.Printf("⚠️  rate limit lookup failed: %v", err)
			c.Next()
			return
		}
		if attempts >= LoginMaxAttempts {
			pipe := rdb.TxPipeline()
			pipe.Set(ctx, cooldownKey, "1", LoginCooldown)
			pipe.Del(ctx, key)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("⚠️  rate limit cooldown failed: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Locked for %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			pipe := rdb.TxPipeline()
			pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, LoginCooldown)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("⚠️  rate limit increment failed: %v", err)
			}
		case http.StatusOK, http.StatusSeeOther:
			if err := rdb.Del(ctx, key, cooldownKey).Err(); err != nil {
				log.Printf("⚠️  rate limit reset failed: %v", err)
			}
		}
	}
}

// loginUsername reads the username from a JSON or form-encoded login body
func loginUsername(contentType string, body []byte) string {
	if contentType == binding.MIMEPOSTForm {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return ""
		}
		return values.Get("username")
	}
	var input struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		return ""
	}
	return input.Username
}
