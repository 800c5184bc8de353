package config

// EnvPrefix is passed to envconfig; every field carries its full variable name.
const EnvPrefix = "FOODTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "FOODTRACK_APP_ENV"
	EnvPort     = "FOODTRACK_APP_PORT"
	EnvLogLevel = "FOODTRACK_LOG_LEVEL"

	EnvDBDSN    = "FOODTRACK_DB_DSN"
	EnvDBDriver = "FOODTRACK_DB_DRIVER"
	EnvDBHost   = "FOODTRACK_DB_HOST"
	EnvDBPort   = "FOODTRACK_DB_PORT"
	EnvDBUser   = "FOODTRACK_DB_USER"
	EnvDBPass   = "FOODTRACK_DB_PASSWORD"
	EnvDBName   = "FOODTRACK_DB_NAME"

	EnvRedisURL = "FOODTRACK_REDIS_URL"

	EnvAutoMigrate   = "FOODTRACK_AUTO_MIGRATE"
	EnvImportMaxRows = "FOODTRACK_IMPORT_MAX_ROWS"
	EnvCORSOrigins   = "FOODTRACK_CORS_ORIGINS"
	EnvShutdownGrace = "FOODTRACK_HTTP_SHUTDOWN_GRACE"
)

var dbPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
