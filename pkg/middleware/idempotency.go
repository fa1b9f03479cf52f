package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tiffin/internal/infra"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
)

type cachedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the cached response for a retried mutation
// carrying the same Idempotency-Key. Keys are optional; requests without
// the header pass straight through.
func IdempotencyMiddleware(cache *infra.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey := "idempotency:" + key

		if raw, err := cache.Get(c.Request.Context(), cacheKey); err == nil && raw != "" {
			var resp cachedResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				c.Header("Content-Type", resp.ContentType)
				c.Header("X-Idempotency-Replay", "true")
				c.String(resp.StatusCode, resp.Body)
				c.Abort()
				return
			}
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder
		c.Next()

		// Only successful mutations are replayable; failures may be retried.
		if recorder.Status() >= 200 && recorder.Status() < 300 {
			payload, err := json.Marshal(cachedResponse{
				StatusCode:  recorder.Status(),
				ContentType: recorder.Header().Get("Content-Type"),
				Body:        recorder.body.String(),
			})
			if err != nil {
				return
			}
			if err := cache.Set(c.Request.Context(), cacheKey, string(payload), idempotencyTTL); err != nil {
				log.Printf("Failed to cache idempotent response: %v", err)
			}
		}
	}
}
