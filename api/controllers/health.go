package controllers

import (
	"context"
	"net/http"

	"github.com/lucaferrante/fornello-backend/api/responses"
	"github.com/lucaferrante/fornello-backend/pkg/config"
	pkgerrors "github.com/lucaferrante/fornello-backend/pkg/errors"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

// Pinger is the health-check surface a dependency exposes.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fornello-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fornello-Env", cfg.App.Env)

		checks := map[string]Pinger{
			"postgres": db,
			"redis":    cache,
		}
		status := map[string]string{}
		healthy := true
		for name, dep := range checks {
			if dep == nil {
				status[name] = "skipped"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				healthy = false
				status[name] = "down"
				continue
			}
			status[name] = "up"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(status))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": status})
	}
}
