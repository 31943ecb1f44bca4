package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env  string `mapstructure:"env"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Search struct {
		// DebounceInterval is how long the session client waits after the
		// last keystroke before issuing a pass.
		DebounceInterval time.Duration `mapstructure:"debounce_interval"`
		// PassTimeout bounds one candidate fetch + scoring pass.
		PassTimeout time.Duration `mapstructure:"pass_timeout"`
		// CacheTTL is how long the serialized video list stays in Redis.
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
		// RateLimit is requests-per-second per client on search endpoints.
		RateLimit float64 `mapstructure:"rate_limit"`
		RateBurst int     `mapstructure:"rate_burst"`
	} `mapstructure:"search"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

func LoadConfig(paths ...string) (cfg Config, err error) {
	if err = godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("search.debounce_interval", "SEARCH_DEBOUNCE_INTERVAL")
	viper.BindEnv("search.pass_timeout", "SEARCH_PASS_TIMEOUT")
	viper.BindEnv("search.cache_ttl", "SEARCH_CACHE_TTL")
	viper.BindEnv("search.rate_limit", "SEARCH_RATE_LIMIT")
	viper.BindEnv("search.rate_burst", "SEARCH_RATE_BURST")
	viper.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("search.debounce_interval", 300*time.Millisecond)
	viper.SetDefault("search.pass_timeout", 5*time.Second)
	viper.SetDefault("search.cache_ttl", 30*time.Second)
	viper.SetDefault("search.rate_limit", 10.0)
	viper.SetDefault("search.rate_burst", 20)

	err = viper.Unmarshal(&cfg)
	return
}
