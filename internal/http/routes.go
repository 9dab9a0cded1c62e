package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rl := NewRateLimiter(h.RateLimitPerMin, time.Minute)
	auth := h.Authenticate()
	user := h.RequireUser()

	// Accounts and sessions.
	r.POST("/tokensignin", h.TokenSignIn)
	r.POST("/emailSignUp", RateLimit(rl), h.EmailSignUp)
	r.POST("/emailLogin", RateLimit(rl), h.EmailLogin)
	r.GET("/userLogin", auth, user, h.UserLogin)
	r.GET("/logout", auth, user, h.Logout)
	if h.OAuth != nil {
		r.GET("/auth/google/login", h.GoogleLogin)
		r.GET("/auth/google/callback", h.GoogleCallback)
	}

	// Profiles.
	r.GET("/myFullInfo", auth, user, h.MyFullInfo)
	r.POST("/updateUserInfo", auth, user, h.UpdateUserInfo)
	r.POST("/updateUserCredentials", auth, user, h.UpdateUserCredentials)
	r.GET("/user/:id", h.GetUser)
	r.GET("/searchUser/:name", h.SearchUser)
	r.GET("/randomUsers", auth, user, h.RandomUsers)
	r.GET("/photo/:id", h.GetPhoto)

	// Follow graph.
	r.GET("/followUser/:id", auth, user, h.FollowUser)
	r.GET("/unfollowUser/:id", auth, user, h.UnfollowUser)
	r.GET("/checkFollowing/:id", auth, user, h.CheckFollowing)

	// Experiences and timeline.
	r.POST("/postExperience", auth, user, h.PostExperience)
	r.GET("/myExperiences", auth, user, h.MyExperiences)
	r.GET("/:userId/experiences", h.UserExperiences)
	r.DELETE("/experience/:id", auth, user, h.DeleteExperience)
	r.GET("/timeline", auth, user, h.Timeline)

	return r
}
