package handler

import (
	"net/http"
	"nest/config"
	"nest/di"
	"nest/shared/logger"
	"sync"

	nestHTTP "nest/transport/http"
)

var (
	server *nestHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The dependency graph is built once
// per instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
