package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	OTP           OTPConfig
	OTPRateLimit  OTPRateLimitConfig
	Notifications NotificationsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPLEDGER_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPLEDGER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPLEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig configures the SQLite-backed state container. The default DSN keeps
// every registry in process memory, so a restart starts from an empty ledger.
type DBConfig struct {
	DSN          string `envconfig:"SHOPLEDGER_DB_DSN" default:"file::memory:?cache=shared"`
	MaxOpenConns int    `envconfig:"SHOPLEDGER_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns int    `envconfig:"SHOPLEDGER_DB_MAX_IDLE_CONNS" default:"1"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPLEDGER_REDIS_URL"`
	Address      string        `envconfig:"SHOPLEDGER_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"SHOPLEDGER_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPLEDGER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPLEDGER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPLEDGER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPLEDGER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPLEDGER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPLEDGER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOPLEDGER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHOPLEDGER_JWT_ISSUER" default:"shopledger"`
	ExpirationMinutes int    `envconfig:"SHOPLEDGER_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPLEDGER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPLEDGER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPLEDGER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPLEDGER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPLEDGER_ARGON_KEY_LEN" default:"32"`
}

// OTPConfig controls the login challenge flow. MockCode is accepted as a valid
// code whenever it is set; it exists for dev environments without an SMS
// provider and must be empty in prod.
type OTPConfig struct {
	TTL        time.Duration `envconfig:"SHOPLEDGER_OTP_TTL" default:"5m"`
	CodeLength int           `envconfig:"SHOPLEDGER_OTP_CODE_LENGTH" default:"6"`
	MockCode   string        `envconfig:"SHOPLEDGER_OTP_MOCK_CODE" default:"123456"`
}

type OTPRateLimitConfig struct {
	Window     time.Duration `envconfig:"SHOPLEDGER_OTP_RATE_LIMIT_WINDOW" default:"1m"`
	PhoneLimit int           `envconfig:"SHOPLEDGER_OTP_RATE_LIMIT_PHONE_LIMIT" default:"5"`
	IPLimit    int           `envconfig:"SHOPLEDGER_OTP_RATE_LIMIT_IP_LIMIT" default:"20"`
}

type NotificationsConfig struct {
	RetentionDays   int           `envconfig:"SHOPLEDGER_NOTIFICATION_RETENTION_DAYS" default:"30"`
	CleanupInterval time.Duration `envconfig:"SHOPLEDGER_NOTIFICATION_CLEANUP_INTERVAL" default:"24h"`
}
