package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func newLoginRouter(rdb redis.Cmdable) *gin.Engine {
	r := gin.New()
	r.POST("/login", LoginRateLimit(rdb), func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	})
	return r
}

func postLogin(r http.Handler, body string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimit_NilClientPassesThrough(t *testing.T) {
	r := newLoginRouter(nil)
	for i := 0; i < LoginMaxAttempts+3; i++ {
		if code := postLogin(r, `{"username":"x","password":"y"}`); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, code)
		}
	}
}

func TestLoginRateLimit_LocksAfterMaxAttempts(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	client.Del(ctx, "login_attempts:ratelimit-test", "login_cooldown:ratelimit-test")
	defer client.Del(ctx, "login_attempts:ratelimit-test", "login_cooldown:ratelimit-test")

	r := newLoginRouter(client)
	body := `{"username":"ratelimit-test","password":"wrong"}`
	for i := 0; i < LoginMaxAttempts; i++ {
		if code := postLogin(r, body); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, code)
		}
	}
	if code := postLogin(r, body); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after %d failures, got %d", LoginMaxAttempts, code)
	}
	if code := postLogin(r, body); code != http.StatusTooManyRequests {
		t.Fatalf("expected cooldown to hold, got %d", code)
	}
}

func TestLoginUsername(t *testing.T) {
	tests := []struct {
		contentType string
		body        string
		want        string
	}{
		{"application/json", `{"username":"chef","password":"x"}`, "chef"},
		{"application/x-www-form-urlencoded", "username=chef&password=x", "chef"},
		{"application/json", `not json`, ""},
		{"application/x-www-form-urlencoded", "password=x", ""},
	}
	for _, tt := range tests {
		if got := loginUsername(tt.contentType, []byte(tt.body)); got != tt.want {
			t.Errorf("loginUsername(%q, %q) = %q, want %q", tt.contentType, tt.body, got, tt.want)
		}
	}
}

func TestLoginRateLimit_SuccessfulFormLoginResetsCounter(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	const key = "login_attempts:ratelimit-reset"
	client.Del(ctx, key, "login_cooldown:ratelimit-reset")
	defer client.Del(ctx, key, "login_cooldown:ratelimit-reset")

	r := gin.New()
	r.POST("/login", LoginRateLimit(client), func(c *gin.Context) {
		if c.PostForm("password") == "right" {
			c.Redirect(http.StatusSeeOther, "/kitchen")
			return
		}
		c.Status(http.StatusUnauthorized)
	})
	post := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	post("username=ratelimit-reset&password=wrong")
	if n, _ := client.Get(ctx, key).Int(); n != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", n)
	}
	if code := post("username=ratelimit-reset&password=right"); code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", code)
	}
	if n, err := client.Exists(ctx, key).Result(); err != nil || n != 0 {
		t.Fatalf("failure counter not reset: exists=%d err=%v", n, err)
	}
}
