package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type R2 struct {
	AccountID  string `envconfig:"ACCOUNT_ID"`
	AccessKey  string `envconfig:"ACCESS_KEY"`
	SecretKey  string `envconfig:"SECRET_KEY"`
	BucketName string `envconfig:"BUCKET_NAME"`
	PublicURL  string `envconfig:"PUBLIC_URL"`
}

type Gemini struct {
	APIKey  string `envconfig:"API_KEY"`
	Model   string `envconfig:"MODEL" default:"gemini-2.0-flash"`
	BaseURL string `envconfig:"BASE_URL"`
}

type Config struct {
	Port               string `envconfig:"PORT" default:"3000"`
	FrontendURL        string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `envconfig:"GOOGLE_REDIRECT_URI" default:"http://localhost:3000/login/callback"`
	PostgresURI        string `envconfig:"POSTGRES_URI"`
	MigrationsEnabled  bool   `envconfig:"MIGRATIONS_ENABLED" default:"true"`
	RedisURI           string `envconfig:"REDIS_URI" default:"localhost:6379"`
	SecretKey          string `envconfig:"SECRET_KEY"`
	CookieName         string `envconfig:"COOKIE_NAME" default:"planner_session"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	Env                string `envconfig:"ENV" default:"production"`
	StatsSchedule      string `envconfig:"STATS_SCHEDULE" default:"@every 00h30m00s"`

	// Fixed pause between attempts of a retried generation step.
	GenerationRetryDelay time.Duration `envconfig:"GENERATION_RETRY_DELAY" default:"1s"`

	// Nested groups read GEMINI_* and R2_* variables.
	Gemini Gemini
	R2     R2
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
