package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// How long the "in-progress" lock holds before the handler must have
	// finished and written the final entry.
	provisionalLockTTL = 60 * time.Second
	// Allowed client/server clock skew for X-Request-At (in UTC).
	maxClockSkew = 10 * time.Minute
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

// Idempotency deduplicates retried mutating requests. The key is
// method + route + authenticated user + X-Request-Id; a finished response is
// replayed verbatim for the same key, a reused id with a different body is a
// conflict. Status overwrites stay last-write-wins; this only absorbs wire
// retries of the same request.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		// Only enforce on mutating methods.
		switch method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		reqID := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if reqID == "" {
			// Clients that do not opt in are passed through untouched.
			c.Next()
			return
		}
		if !validReqID(reqID) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_REQUEST_ID", "message": "invalid X-Request-Id format"},
			})
			return
		}

		reqAt, err := parseRequestAt(c.GetHeader("X-Request-At"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_REQUEST_AT", "message": err.Error()},
			})
			return
		}
		now := nowUTC()
		if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_REQUEST_AT", "message": "X-Request-At too skewed"},
			})
			return
		}

		// Buffer & hash body so a reused id with a different payload is caught.
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		bhash := bodyHash(body)

		key := buildKey(method, c.FullPath(), strconv.FormatInt(c.GetInt64("user_id"), 10), reqID)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		entry := idempEntry{
			InProgress:  true,
			BodySHA256:  bhash,
			RequestID:   reqID,
			RequestAtMS: reqAt.UnixMilli(),
			CreatedAt:   nowUTC(),
		}
		ok, err := provisionalSet(ctx, rdb, key, entry)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   gin.H{"code": "IDEMPOTENCY_UNAVAILABLE", "message": "idempotency store unavailable"},
			})
			return
		}
		if !ok {
			// Key exists: body must match, and we may be able to replay.
			cur, errLoad := loadEntry(ctx, rdb, key)
			if errLoad != nil {
				log.Printf("idempotency load failed key=%s err=%v", key, errLoad)
			}

			if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"success": false,
					"error":   gin.H{"code": "REQUEST_ID_REUSED", "message": "X-Request-Id reused with different body"},
				})
				return
			}
			if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
				c.Data(cur.Code, "application/json", cur.Body)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   gin.H{"code": "REQUEST_IN_PROGRESS", "message": "request is already in progress"},
			})
			return
		}

		// Call the handler and record the final response for replay.
		rec := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rec
		c.Next()

		final := idempEntry{
			InProgress:  false,
			Code:        rec.Status(),
			Body:        rec.buf.Bytes(),
			BodySHA256:  bhash,
			RequestID:   reqID,
			RequestAtMS: reqAt.UnixMilli(),
			CreatedAt:   nowUTC(),
		}
		_ = saveFinal(context.Background(), rdb, key, final, ttl)
	}
}
