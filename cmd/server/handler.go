package main

import (
	"crypto/subtle"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/asclaudino/data-visualization-project/consts"
)

// apiKeyMiddleware rejects API requests without the configured key. When
// API_KEY is unset the endpoints are open (dev setups).
func apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("API_KEY")
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.URL.Query().Get(consts.APIKeyQueryParam)
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, consts.AuthHeaderPrefix) {
			provided = strings.TrimPrefix(auth, consts.AuthHeaderPrefix)
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// chartsJSONHandler serves the pre-generated charts.json export.
func chartsJSONHandler() http.HandlerFunc {
	path := filepath.Join(consts.ChartDataDir, consts.ChartsJSONFile)
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(path); err != nil {
			http.Error(w, "Charts not generated yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}
}
