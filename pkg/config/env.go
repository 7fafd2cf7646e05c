package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "FARMTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "FARMTRACK_APP_ENV"
	EnvPort                   = "FARMTRACK_APP_PORT"
	EnvDBDSN                  = "FARMTRACK_DB_DSN"
	EnvDBHost                 = "FARMTRACK_DB_HOST"
	EnvDBUser                 = "FARMTRACK_DB_USER"
	EnvDBName                 = "FARMTRACK_DB_NAME"
	EnvRedisURL               = "FARMTRACK_REDIS_URL"
	EnvJWTSecret              = "FARMTRACK_JWT_SECRET"
	EnvJWTIssuer              = "FARMTRACK_JWT_ISSUER"
	EnvJWTExpMins             = "FARMTRACK_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FARMTRACK_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
