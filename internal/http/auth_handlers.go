package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nartaykz/travellog/internal/domain"
	"github.com/nartaykz/travellog/internal/log"
	"github.com/nartaykz/travellog/internal/queue"
	"github.com/nartaykz/travellog/internal/repo"
	"github.com/nartaykz/travellog/internal/security"
)

type tokenSignInReq struct {
	Credential string `json:"credential"`
}

// TokenSignIn godoc
// @Summary Sign in with a Google ID token
// @Tags auth
// @Accept json
// @Param payload body tokenSignInReq true "credential"
// @Success 200 {string} string "success"
// @Router /tokensignin [post]
func (h *Handler) TokenSignIn(c *gin.Context) {
	var in tokenSignInReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Credential == "" {
		h.clearAuthCookies(c)
		c.JSON(http.StatusOK, gin.H{"error": "Invalid token provided"})
		return
	}
	if _, err := h.Google.Verify(c.Request.Context(), in.Credential); err != nil {
		log.L().Info("tokensignin rejected", zap.Error(err))
		h.clearAuthCookies(c)
		c.JSON(http.StatusOK, gin.H{"error": "Invalid token provided"})
		return
	}
	h.setCookie(c, cookieGoogle, in.Credential, int(h.SessionTTL.Seconds()))
	c.String(http.StatusOK, "success")
}

type signUpReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// EmailSignUp godoc
// @Summary Create a local account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signUpReq true "signup"
// @Success 200 {object} map[string]string
// @Router /emailSignUp [post]
func (h *Handler) EmailSignUp(c *gin.Context) {
	var in signUpReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid email or password"})
		return
	}
	ctx := c.Request.Context()

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
		return
	}
	u := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Picture:      h.DefaultPicture,
		Followers:    []string{},
		Following:    []string{},
		Experiences:  []string{},
	}
	// The unique email index resolves the duplicate race; no prior
	// existence check needed.
	if err := h.Store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			c.JSON(http.StatusOK, gin.H{"error": "Email Already Taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	tok, err := h.Sessions.Create(ctx, u.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	h.setSessionCookie(c, tok)

	log.L().Info("user signed up", zap.String("email", u.Email))
	_ = h.Events.Publish(ctx, queue.Exchange, "user.registered",
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name},
		requestID(c))

	c.JSON(http.StatusOK, gin.H{})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailLogin godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} map[string]string
// @Router /emailLogin [post]
func (h *Handler) EmailLogin(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Incorrect email or password"})
		return
	}
	ctx := c.Request.Context()

	// Unknown email and wrong password answer identically.
	u, err := h.Store.FindUserByEmail(ctx, in.Email)
	if err != nil || u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusOK, gin.H{"error": "Incorrect email or password"})
		return
	}

	tok, err := h.Sessions.Create(ctx, u.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	h.setSessionCookie(c, tok)
	c.JSON(http.StatusOK, gin.H{})
}

// UserLogin godoc
// @Summary Confirm login and report first-sight materialization
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /userLogin [get]
func (h *Handler) UserLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "isNewUser": c.GetBool(ctxIsNewUser)})
}

// Logout godoc
// @Summary Revoke the presented session and clear cookies
// @Tags auth
// @Success 200
// @Router /logout [get]
func (h *Handler) Logout(c *gin.Context) {
	if tok := c.GetString(ctxSessionToken); tok != "" {
		if err := h.Sessions.Revoke(c.Request.Context(), tok); err != nil {
			log.L().Warn("session revoke failed", zap.Error(err))
		}
	}
	h.clearAuthCookies(c)
	c.Status(http.StatusOK)
}

// GoogleLogin redirects to Google's consent page with a signed state.
func (h *Handler) GoogleLogin(c *gin.Context) {
	state := h.OAuth.MakeState(uuid.NewString())
	c.Redirect(http.StatusFound, h.OAuth.AuthURL(state))
}

// GoogleCallback finishes the redirect flow: code exchange, ID-token
// verification, identity materialization and a fresh session.
func (h *Handler) GoogleCallback(c *gin.Context) {
	if !h.OAuth.VerifyState(c.Query("state")) {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid token provided"})
		return
	}
	ctx := c.Request.Context()
	rawIDToken, id, err := h.OAuth.Exchange(ctx, c.Query("code"))
	if err != nil {
		log.L().Info("google exchange failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"error": "Invalid token provided"})
		return
	}

	u, err := h.Store.FindUserByEmail(ctx, id.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
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
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		_ = h.Events.Publish(ctx, queue.Exchange, "user.registered",
			queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name, Google: true},
			requestID(c))
	}

	tok, err := h.Sessions.Create(ctx, u.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	h.setCookie(c, cookieGoogle, rawIDToken, int(h.SessionTTL.Seconds()))
	h.setSessionCookie(c, tok)
	c.Redirect(http.StatusFound, h.FrontendURL)
}
