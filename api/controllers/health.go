package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/lamuse/classtee-backend/api/responses"
	"github.com/lamuse/classtee-backend/pkg/config"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
	"github.com/lamuse/classtee-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

const envHeader = "X-Classtee-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once every dependency answers a ping.
func HealthReady(cfg *config.Config, deps map[string]redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
					WithDetails(map[string]any{"dependency": name}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
