package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	RedisAddr       string
	RabbitURL       string
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	StateSecret     string
	FrontendURL     string
	SessionTTLDays  int
	RateLimitPerMin int
	CookieSecure    bool
	DefaultPicture  string
	Prod            bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Port:            getenv("APP_PORT", "5000"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "travelly"),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RabbitURL:       getenv("RABBIT_URL", ""),
		GoogleClientID:  getenv("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  getenv("GOOGLE_REDIRECT_URI", "http://localhost:5000/auth/google/callback"),
		StateSecret:     getenv("OAUTH_STATE_SECRET", "dev_state_secret"),
		FrontendURL:     getenv("FRONTEND_URL", "http://localhost:3000"),
		SessionTTLDays:  atoi(getenv("SESSION_TTL_DAYS", "30")),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "30")),
		CookieSecure:    getenv("COOKIE_SECURE", "true") == "true",
		DefaultPicture:  getenv("DEFAULT_PICTURE_ID", "62c01dd258b4dbaf7670a4e1"),
		Prod:            getenv("APP_ENV", "dev") == "prod",
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
