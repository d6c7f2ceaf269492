package config

// EnvPrefix is handed to envconfig; every field carries an explicit
// envconfig tag so the prefix only matters for unnamed fields.
const EnvPrefix = "CLASSTEE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	CatalogSourceStatic = "static"
	CatalogSourceDB     = "db"
)

const (
	EnvAppEnv      = "CLASSTEE_APP_ENV"
	EnvPort        = "CLASSTEE_APP_PORT"
	EnvLogLevel    = "CLASSTEE_LOG_LEVEL"
	EnvDBDSN       = "CLASSTEE_DB_DSN"
	EnvDBDriver    = "CLASSTEE_DB_DRIVER"
	EnvDBHost      = "CLASSTEE_DB_HOST"
	EnvDBUser      = "CLASSTEE_DB_USER"
	EnvDBName      = "CLASSTEE_DB_NAME"
	EnvRedisURL    = "CLASSTEE_REDIS_URL"
	EnvCatalogSrc  = "CLASSTEE_CATALOG_SOURCE"
	EnvCouponCodes = "CLASSTEE_COUPON_CODES"
	EnvOrdersTopic = "CLASSTEE_PUBSUB_ORDERS_TOPIC"
	EnvPaymentWait = "CLASSTEE_PAYMENT_SIMULATION_DELAY"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
