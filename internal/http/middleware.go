package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/nartaykz/travellog/internal/domain"
	"github.com/nartaykz/travellog/internal/log"
	"github.com/nartaykz/travellog/internal/metrics"
	"github.com/nartaykz/travellog/internal/oauth"
	"github.com/nartaykz/travellog/internal/queue"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.InFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Authenticate resolves the caller's credentials, strongest first.
//
// An opaque session cookie must resolve to a live session: on success the
// stored user rides the request context, on rejection both cookies are
// cleared and the response ends with an empty body. Backend errors are
// not rejections: they answer 500 and leave the cookies alone. Without a
// session cookie, a Google ID-token cookie (if any) is verified and the
// claimed identity is attached provisionally for RequireUser to
// materialize.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if tok, err := c.Cookie(cookieSession); err == nil && tok != "" {
			uid, err := h.Sessions.Resolve(ctx, tok)
			if err != nil {
				// A session backend outage must not log anyone out.
				log.L().Error("session resolve failed", zap.String("request_id", requestID(c)), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			if uid != "" {
				oid, err := primitive.ObjectIDFromHex(uid)
				if err == nil {
					u, err := h.Store.FindUserByID(ctx, oid)
					if err != nil {
						log.L().Error("session user lookup failed", zap.String("request_id", requestID(c)), zap.Error(err))
						c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
						return
					}
					if u != nil {
						c.Set(ctxUser, u)
						c.Set(ctxSessionToken, tok)
						c.Next()
						return
					}
				}
			}
			log.L().Info("session token rejected", zap.String("request_id", requestID(c)))
			h.clearAuthCookies(c)
			c.AbortWithStatus(http.StatusOK)
			return
		}

		if raw, err := c.Cookie(cookieGoogle); err == nil && raw != "" {
			id, err := h.Google.Verify(ctx, raw)
			if err != nil {
				log.L().Info("google token rejected", zap.String("request_id", requestID(c)), zap.Error(err))
				h.clearAuthCookies(c)
				c.AbortWithStatus(http.StatusOK)
				return
			}
			c.Set(ctxIdentity, id)
		}
		c.Next()
	}
}

// RequireUser finishes identity resolution: a provisional Google identity
// is looked up by email and, on first sight, materialized into a user
// document with default profile and social fields.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxUser); ok {
			c.Next()
			return
		}
		v, ok := c.Get(ctxIdentity)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": "No Token Specified"})
			return
		}
		id := v.(*oauth.Identity)
		ctx := c.Request.Context()

		u, err := h.Store.FindUserByEmail(ctx, id.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if u == nil {
			u = &domain.User{
				Email:       id.Email,
				Name:        id.Name,
				Picture:     id.Picture,
				Followers:   []string{},
				Following:   []string{},
				Experiences: []string{},
			}
			if err := h.Store.CreateUser(ctx, u); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			c.Set(ctxIsNewUser, true)
			log.L().Info("google user materialized", zap.String("email", u.Email))
			_ = h.Events.Publish(ctx, queue.Exchange, "user.registered",
				queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name, Google: true},
				requestID(c))
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

type bucket struct {
	tokens  int
	updated time.Time
}

// RateLimiter is a coarse per-IP token bucket guarding the credential
// endpoints against brute force.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{buckets: make(map[string]*bucket), rate: rate, window: window}
}

func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.updated) > rl.window {
		rl.buckets[ip] = &bucket{tokens: 1, updated: now}
		return true
	}
	if b.tokens < rl.rate {
		b.tokens++
		b.updated = now
		return true
	}
	return false
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil && host != "" {
		return host
	}
	return ip
}

func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(clientIP(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
