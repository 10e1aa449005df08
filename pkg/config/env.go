package config

const (
	// EnvPrefix scopes envconfig processing; every variable already carries the
	// HADYSHOP_ prefix in its tag, so the prefix itself stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "HADYSHOP_APP_ENV"
	EnvPort      = "HADYSHOP_APP_PORT"
	EnvDBDSN     = "HADYSHOP_DB_DSN"
	EnvDBHost    = "HADYSHOP_DB_HOST"
	EnvDBUser    = "HADYSHOP_DB_USER"
	EnvDBName    = "HADYSHOP_DB_NAME"
	EnvRedisURL  = "HADYSHOP_REDIS_URL"
	EnvJWTSecret = "HADYSHOP_JWT_SECRET"
	EnvJWTIssuer = "HADYSHOP_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
