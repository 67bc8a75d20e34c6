package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OTP          OTPConfig
	Twilio       TwilioConfig
	RateLimit    RateLimitConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WASHIFY_APP_ENV" required:"true"`
	Port         string `envconfig:"WASHIFY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WASHIFY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WASHIFY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WASHIFY_DB_DSN"`
	Driver string `envconfig:"WASHIFY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WASHIFY_DB_HOST"`
	LegacyPort     int    `envconfig:"WASHIFY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WASHIFY_DB_USER"`
	LegacyPassword string `envconfig:"WASHIFY_DB_PASSWORD"`
	LegacyName     string `envconfig:"WASHIFY_DB_NAME"`
	LegacySSLMode  string `envconfig:"WASHIFY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WASHIFY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WASHIFY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WASHIFY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WASHIFY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WASHIFY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WASHIFY_REDIS_ADDR"`
	Password     string        `envconfig:"WASHIFY_REDIS_PASSWORD"`
	DB           int           `envconfig:"WASHIFY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WASHIFY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WASHIFY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WASHIFY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WASHIFY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WASHIFY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WASHIFY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WASHIFY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"WASHIFY_JWT_EXPIRATION_MINUTES" required:"true"`
}

type OTPConfig struct {
	CodeLength int           `envconfig:"WASHIFY_OTP_CODE_LENGTH" default:"6"`
	TTL        time.Duration `envconfig:"WASHIFY_OTP_TTL" default:"5m"`
}

type TwilioConfig struct {
	AccountSID string `envconfig:"WASHIFY_TWILIO_ACCOUNT_SID"`
	AuthToken  string `envconfig:"WASHIFY_TWILIO_AUTH_TOKEN"`
	FromNumber string `envconfig:"WASHIFY_TWILIO_PHONE_NUMBER"`
}

type RateLimitConfig struct {
	OTPSendWindow     time.Duration `envconfig:"WASHIFY_RATE_LIMIT_OTP_SEND_WINDOW" default:"1m"`
	OTPSendPhoneLimit int           `envconfig:"WASHIFY_RATE_LIMIT_OTP_SEND_PHONE_LIMIT" default:"3"`
	OTPSendIPLimit    int           `envconfig:"WASHIFY_RATE_LIMIT_OTP_SEND_IP_LIMIT" default:"10"`
	OTPVerifyWindow   time.Duration `envconfig:"WASHIFY_RATE_LIMIT_OTP_VERIFY_WINDOW" default:"1m"`
	OTPVerifyIPLimit  int           `envconfig:"WASHIFY_RATE_LIMIT_OTP_VERIFY_IP_LIMIT" default:"20"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"WASHIFY_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"WASHIFY_CRON_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WASHIFY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
