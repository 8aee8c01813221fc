package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

type Config struct {
	App struct {
		Port      string `mapstructure:"port"`
		Env       string `mapstructure:"env"`
		LogLevel  string `mapstructure:"log_level"`
		PublicURL string `mapstructure:"public_url"`
	} `mapstructure:"app"`
	// Backend holds the two connection parameters of the hosted store. URL is
	// the Postgres connection URL; AnonKey is the public API key clients send in
	// the apikey header.
	Backend struct {
		URL     string `mapstructure:"url"`
		AnonKey string `mapstructure:"anon_key"`
	} `mapstructure:"backend"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret            string        `mapstructure:"jwt_secret"`
		TokenLifespan        time.Duration `mapstructure:"token_lifespan"`
		ConfirmationLifespan time.Duration `mapstructure:"confirmation_lifespan"`
		ConfirmURL           string        `mapstructure:"confirm_url"`
	} `mapstructure:"auth"`
	Profiles struct {
		SwallowListErrors bool `mapstructure:"swallow_list_errors"`
	} `mapstructure:"profiles"`
	Drafts struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"drafts"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.public_url", "http://localhost:3000")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", "portfolio-hub-worker")
	v.SetDefault("auth.token_lifespan", time.Hour)
	v.SetDefault("auth.confirmation_lifespan", 24*time.Hour)
	v.SetDefault("auth.confirm_url", "http://localhost:3000/confirm")
	v.SetDefault("profiles.swallow_list_errors", true)
	v.SetDefault("drafts.ttl", 2*time.Hour)
}

// LoadConfig reads .env, then config.yaml from the given paths (or "."), then
// environment variables. It does not validate; call Validate before building
// clients.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")
	v.BindEnv("app.public_url", "APP_PUBLIC_URL")
	v.BindEnv("backend.url", "BACKEND_URL")
	v.BindEnv("backend.anon_key", "BACKEND_ANON_KEY")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.confirm_url", "AUTH_CONFIRM_URL")
	v.BindEnv("profiles.swallow_list_errors", "PROFILES_SWALLOW_LIST_ERRORS")
	v.BindEnv("drafts.ttl", "DRAFTS_TTL")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}

// Validate rejects missing or template values for the backend connection and
// the signing secret.
func (c Config) Validate() error {
	if looksUnset(c.Backend.URL) || looksUnset(c.Backend.AnonKey) {
		return apperror.NewConfig("backend.url and backend.anon_key must be set (BACKEND_URL, BACKEND_ANON_KEY)")
	}
	if looksUnset(c.Auth.JWTSecret) {
		return apperror.NewConfig("auth.jwt_secret must be set (JWT_SECRET)")
	}
	if c.Auth.TokenLifespan <= 0 {
		return apperror.NewConfig("auth.token_lifespan must be positive")
	}
	return nil
}

var placeholderMarkers = []string{"your-", "placeholder", "changeme"}

func looksUnset(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return true
	}
	for _, m := range placeholderMarkers {
		if strings.Contains(v, m) {
			return true
		}
	}
	return false
}
