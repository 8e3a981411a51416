// Package handler is the serverless entry point: it serves the same app as
// cmd/web, built once per instance.
//
// Workspaces, dialogs and login limits live in process memory, so admin
// flows need a single instance and a fixed SESSION_SECRET. A Confirm opened
// on one instance cannot be confirmed on another.
package handler

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"paintcompany/internal/app"
	"paintcompany/internal/config"
)

var (
	once    sync.Once
	engine  *gin.Engine
	initErr error
)

func load() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	gin.SetMode(cfg.GinMode)
	if cfg.RandomSecret {
		log.Println("SESSION_SECRET must be set for serverless deploys; admin logins will not survive a cold start")
	}
	a, err := app.New(cfg)
	if err != nil {
		initErr = err
		return
	}
	engine = a.Engine
}

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(load)
	if initErr != nil {
		log.Printf("App not available: %v", initErr)
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}
	engine.ServeHTTP(w, r)
}
