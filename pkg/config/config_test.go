package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8081" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if got := cfg.Checkout.PaymentDelay; got != 2*time.Second {
		t.Fatalf("expected default payment delay 2s, got %v", got)
	}
	if got := cfg.Coupons.Codes["DISCOUNT5"]; got != 5 {
		t.Fatalf("expected default coupon DISCOUNT5=5, got %d", got)
	}
	if cfg.Catalog.UsesDB() {
		t.Fatal("expected static catalog by default")
	}
	if cfg.PubSub.Enabled() {
		t.Fatal("expected pubsub disabled without a topic")
	}
}

func TestLoad_CouponCodesOverride(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCouponCodes, "SPRING10:10,DISCOUNT5:5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(cfg.Coupons.Codes) != 2 || cfg.Coupons.Codes["SPRING10"] != 10 {
		t.Fatalf("unexpected coupon codes %+v", cfg.Coupons.Codes)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_DBCatalogRequiresConnectionInfo(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSrc, CatalogSourceDB)

	if _, err := Load(); err == nil {
		t.Fatal("expected db catalog without DSN or host to fail")
	}

	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "classtee")
	t.Setenv(EnvDBName, "classtee")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://classtee@localhost:5432/classtee?sslmode=disable" {
		t.Fatalf("unexpected DSN %q", cfg.DB.DSN)
	}
}

func TestLoad_SQLiteRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSrc, CatalogSourceDB)
	t.Setenv(EnvDBDriver, DBDriverSQLite)

	if _, err := Load(); err == nil {
		t.Fatal("expected sqlite without DSN to fail")
	}

	t.Setenv(EnvDBDSN, "file:catalog.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatal("expected sqlite driver")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
