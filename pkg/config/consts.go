package config

// EnvPrefix is passed to envconfig; variable names carry the full
// FORNELLO_ prefix in their tags, so the process prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "FORNELLO_DB_DSN"
	EnvDBHost = "FORNELLO_DB_HOST"
	EnvDBUser = "FORNELLO_DB_USER"
	EnvDBName = "FORNELLO_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
