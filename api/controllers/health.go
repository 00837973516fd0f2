package controllers

import (
	"context"
	"net/http"

	"github.com/retailcore/pos-register-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports process liveness and store reachability.
func Healthz(store pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		httpStatus := http.StatusOK
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				status = "degraded"
				httpStatus = http.StatusServiceUnavailable
			}
		}
		responses.WriteSuccessStatus(w, httpStatus, map[string]string{"status": status})
	}
}
