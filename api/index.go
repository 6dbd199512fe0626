package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"guate-servicios/app"
	"guate-servicios/config"
	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

// initApp builds the application once per warm serverless instance.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		config.SetupLogger(cfg)

		application, initErr = app.New(context.Background(), cfg, slog.Default())
		if initErr != nil {
			slog.Error("application init failed", "error", initErr)
		}
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: models.ServiceUnavailableMessage})
		return
	}
	application.Router.ServeHTTP(w, r)
}
