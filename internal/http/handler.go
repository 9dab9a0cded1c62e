package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nartaykz/travellog/internal/domain"
	"github.com/nartaykz/travellog/internal/oauth"
	"github.com/nartaykz/travellog/internal/queue"
	"github.com/nartaykz/travellog/internal/session"
)

// Store is the persistence surface the handlers need. *repo.Store is the
// real implementation; tests swap in an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	UpdateProfile(ctx context.Context, email string, p domain.ProfileUpdate) error
	UpdatePassword(ctx context.Context, email, hash string) error
	SearchUsers(ctx context.Context, name string) ([]domain.User, error)
	RandomUsers(ctx context.Context, excludeEmail string, n int) ([]domain.User, error)

	AddFollow(ctx context.Context, follower, target primitive.ObjectID) (bool, error)
	RemoveFollow(ctx context.Context, follower, target primitive.ObjectID) (bool, error)

	AppendExperience(ctx context.Context, email, postID string) ([]string, error)
	RemoveExperience(ctx context.Context, email, postID string) ([]string, error)
	InsertPost(ctx context.Context, p *domain.Post) error
	FindPostByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	FindPostsByAuthors(ctx context.Context, emails []string, skip, limit int) ([]domain.Post, error)

	InsertPhoto(ctx context.Context, dataURI string) (primitive.ObjectID, error)
	FindPhotoByID(ctx context.Context, id primitive.ObjectID) (*domain.Photo, error)
}

// TokenVerifier validates a Google ID token and returns the claimed
// identity. Implemented by *oauth.Verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*oauth.Identity, error)
}

type Handler struct {
	Store    Store
	Sessions session.Store
	Google   TokenVerifier
	OAuth    *oauth.GoogleOAuth // nil disables the redirect flow
	Events   queue.Publisher

	DefaultPicture  string
	FrontendURL     string
	CookieSecure    bool
	SessionTTL      time.Duration
	RateLimitPerMin int
}

func NewHandler(store Store, sessions session.Store, google TokenVerifier, events queue.Publisher) *Handler {
	return &Handler{
		Store:           store,
		Sessions:        sessions,
		Google:          google,
		Events:          events,
		DefaultPicture:  "62c01dd258b4dbaf7670a4e1",
		FrontendURL:     "http://localhost:3000",
		CookieSecure:    true,
		SessionTTL:      30 * 24 * time.Hour,
		RateLimitPerMin: 30,
	}
}

// Cookie names the frontend already depends on: the Google ID token and
// the opaque login session.
const (
	cookieGoogle  = "session-token"
	cookieSession = "user_session_id"
)

// Context keys set by the auth middleware.
const (
	ctxUser         = "auth.user"
	ctxIdentity     = "auth.identity"
	ctxIsNewUser    = "auth.isNewUser"
	ctxSessionToken = "auth.sessionToken"
	ctxRequestID    = "X-Request-ID"
)

// currentUser returns the materialized user; only valid behind
// Authenticate + RequireUser.
func currentUser(c *gin.Context) *domain.User {
	v, _ := c.Get(ctxUser)
	u, _ := v.(*domain.User)
	return u
}

func requestID(c *gin.Context) string { return c.GetString(ctxRequestID) }

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	if h.CookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, maxAge, "/", "", h.CookieSecure, true)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	h.setCookie(c, cookieSession, token, int(h.SessionTTL.Seconds()))
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	h.clearCookie(c, cookieGoogle)
	h.clearCookie(c, cookieSession)
}

// Healthz godoc
// @Summary Service health
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
