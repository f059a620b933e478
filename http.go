package main

import (
	"encoding/json"
	"net/http"

	"github.com/urfave/negroni"
)

type apiError struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, apiError{Detail: detail})
}

func basicAuth(cfg Config) negroni.HandlerFunc {
	return negroni.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		user, pass, _ := r.BasicAuth()

		if cfg.Auth.Username != user || cfg.Auth.Password != pass {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized.", http.StatusUnauthorized)
			return
		}

		next(w, r)
	})
}
