package controllers

import (
	"net/http"

	"github.com/gujjushop/backend/api/responses"
)

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready reports readiness. All state is in process memory, so once the
// router is serving there is nothing left to wait for.
func Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
