package config

// EnvPrefix is intentionally empty; every field names its variable in full.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "WASHIFY_APP_ENV"
	EnvPort       = "WASHIFY_APP_PORT"
	EnvDBDSN      = "WASHIFY_DB_DSN"
	EnvDBHost     = "WASHIFY_DB_HOST"
	EnvDBUser     = "WASHIFY_DB_USER"
	EnvDBName     = "WASHIFY_DB_NAME"
	EnvRedisURL   = "WASHIFY_REDIS_URL"
	EnvJWTSecret  = "WASHIFY_JWT_SECRET"
	EnvJWTIssuer  = "WASHIFY_JWT_ISSUER"
	EnvJWTExpMins = "WASHIFY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
