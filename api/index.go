// Package handler exposes the API as a single net/http function for
// serverless deployments.
package handler

import (
	"net/http"
	"sync"

	"github.com/amirasaad/finance-tracker/infra/initializer"
	"github.com/amirasaad/finance-tracker/pkg/app"
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	served  http.HandlerFunc
	initErr error
)

// Handler is the entry point the platform invokes for every request. The
// application is built on the first call and reused while the instance
// stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	// fiber reads the request path from RequestURI.
	r.RequestURI = r.URL.String()

	once.Do(func() { served, initErr = build() })
	if initErr != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	served.ServeHTTP(w, r)
}

func build() (http.HandlerFunc, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, err
	}
	deps, _, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(deps, cfg))), nil
}
