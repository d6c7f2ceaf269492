package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Coupons  CouponsConfig
	Bank     BankConfig
	Postal   PostalConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.Catalog.UsesDB() {
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CLASSTEE_APP_ENV" required:"true"`
	Port         string `envconfig:"CLASSTEE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CLASSTEE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"CLASSTEE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"CLASSTEE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CLASSTEE_DB_DSN"`
	Driver string `envconfig:"CLASSTEE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CLASSTEE_DB_HOST"`
	Port     int    `envconfig:"CLASSTEE_DB_PORT" default:"5432"`
	User     string `envconfig:"CLASSTEE_DB_USER"`
	Password string `envconfig:"CLASSTEE_DB_PASSWORD"`
	Name     string `envconfig:"CLASSTEE_DB_NAME"`
	SSLMode  string `envconfig:"CLASSTEE_DB_SSLMODE" default:"disable"`

	AutoMigrate bool `envconfig:"CLASSTEE_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"CLASSTEE_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"CLASSTEE_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"CLASSTEE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLASSTEE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded sqlite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"CLASSTEE_REDIS_URL"`
	Address      string        `envconfig:"CLASSTEE_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"CLASSTEE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLASSTEE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLASSTEE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLASSTEE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLASSTEE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLASSTEE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLASSTEE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	Source string `envconfig:"CLASSTEE_CATALOG_SOURCE" default:"static"`
	// EstimateBasePrice is the per-shirt price used by the quick estimate.
	EstimateBasePrice int64 `envconfig:"CLASSTEE_ESTIMATE_BASE_PRICE" default:"980"`
}

// UsesDB reports whether products are read from the database at startup.
func (c CatalogConfig) UsesDB() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceDB)
}

type CheckoutConfig struct {
	SessionTTL     time.Duration `envconfig:"CLASSTEE_SELECTION_SESSION_TTL" default:"2h"`
	DraftTTL       time.Duration `envconfig:"CLASSTEE_CHECKOUT_DRAFT_TTL" default:"2h"`
	ConfirmLockTTL time.Duration `envconfig:"CLASSTEE_CHECKOUT_CONFIRM_LOCK_TTL" default:"1m"`
	PaymentDelay   time.Duration `envconfig:"CLASSTEE_PAYMENT_SIMULATION_DELAY" default:"2s"`
	// ConvenienceDeadline is how long a convenience-store payment number stays valid.
	ConvenienceDeadline time.Duration `envconfig:"CLASSTEE_CONVENIENCE_PAYMENT_DEADLINE" default:"72h"`
}

type CouponsConfig struct {
	Codes map[string]int `envconfig:"CLASSTEE_COUPON_CODES" default:"DISCOUNT5:5"`
}

type BankConfig struct {
	BankName      string `envconfig:"CLASSTEE_BANK_NAME" default:"ミニマル銀行"`
	BranchName    string `envconfig:"CLASSTEE_BANK_BRANCH" default:"本店営業部"`
	AccountType   string `envconfig:"CLASSTEE_BANK_ACCOUNT_TYPE" default:"普通"`
	AccountNumber string `envconfig:"CLASSTEE_BANK_ACCOUNT_NUMBER" default:"1234567"`
	AccountHolder string `envconfig:"CLASSTEE_BANK_ACCOUNT_HOLDER" default:"カ）クラティーズ"`
}

type PostalConfig struct {
	BaseURL string        `envconfig:"CLASSTEE_POSTAL_BASE_URL" default:"https://zipcloud.ibsnet.co.jp/api"`
	Timeout time.Duration `envconfig:"CLASSTEE_POSTAL_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"CLASSTEE_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"CLASSTEE_PUBSUB_ORDERS_TOPIC"`
}

// Enabled reports whether order events should be published.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.OrdersTopic) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CLASSTEE_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbEnvVars {
		if values[env] == "" {
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
