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
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Import       ImportConfig
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
	Env          string `envconfig:"FOODTRACK_APP_ENV" default:"dev"`
	Port         string `envconfig:"FOODTRACK_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"FOODTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout   time.Duration `envconfig:"FOODTRACK_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout  time.Duration `envconfig:"FOODTRACK_HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownGrace time.Duration `envconfig:"FOODTRACK_HTTP_SHUTDOWN_GRACE" default:"10s"`
	CORSOrigins   []string      `envconfig:"FOODTRACK_CORS_ORIGINS" default:"*"`
}

type DBConfig struct {
	DSN    string `envconfig:"FOODTRACK_DB_DSN"`
	Driver string `envconfig:"FOODTRACK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FOODTRACK_DB_HOST"`
	Port     int    `envconfig:"FOODTRACK_DB_PORT" default:"5432"`
	User     string `envconfig:"FOODTRACK_DB_USER"`
	Password string `envconfig:"FOODTRACK_DB_PASSWORD"`
	Name     string `envconfig:"FOODTRACK_DB_NAME"`
	SSLMode  string `envconfig:"FOODTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FOODTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FOODTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

// Redis is optional; leaving both URL and address empty disables idempotency replay.
type RedisConfig struct {
	URL          string        `envconfig:"FOODTRACK_REDIS_URL"`
	Address      string        `envconfig:"FOODTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"FOODTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FOODTRACK_AUTO_MIGRATE" default:"false"`
}

type ImportConfig struct {
	MaxRows int `envconfig:"FOODTRACK_IMPORT_MAX_ROWS" default:"5000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DriverSQLite)
	}

	missing := []string{}
	partValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbPartEnvVars {
		if partValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
