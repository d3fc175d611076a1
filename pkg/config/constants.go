package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SALESREPORT_DB_DSN"
	EnvDBHost = "SALESREPORT_DB_HOST"
	EnvDBUser = "SALESREPORT_DB_USER"
	EnvDBName = "SALESREPORT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
