package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"paintcompany/internal/app"
	"paintcompany/internal/config"
)

const (
	httpsPort       = "8443"
	janitorInterval = 10 * time.Minute
	loginIdle       = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Could not start: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Workspaces of sessions nobody uses any more.
	go a.Workspaces.Janitor(ctx, janitorInterval, cfg.SessionTTL)
	// Login limits of clients that stopped trying.
	go a.Logins.Janitor(ctx, janitorInterval, loginIdle)

	servers, err := buildServers(cfg, a.Engine)
	if err != nil {
		log.Fatalf("Could not configure TLS: %v", err)
	}

	errs := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			var err error
			if s.TLSConfig != nil {
				log.Printf("HTTPS server listening on %s", s.Addr)
				err = s.ListenAndServeTLS("", "")
			} else {
				log.Printf("HTTP server listening on %s", s.Addr)
				err = s.ListenAndServe()
			}
			if !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}(s)
	}

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-errs:
		log.Printf("Server stopped: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown of %s failed: %v", s.Addr, err)
		}
	}
}

// buildServers returns the listeners for the configured TLS mode. With TLS
// on, the plain HTTP server only redirects to HTTPS.
func buildServers(cfg config.Config, h http.Handler) ([]*http.Server, error) {
	switch cfg.TLSMode {
	case config.TLSSelfSigned:
		cert, err := generateSelfSignedCert()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat("localhost.crt"); err == nil {
			if external, err := tls.LoadX509KeyPair("localhost.crt", "localhost.key"); err == nil {
				log.Println("Using external certificate localhost.crt")
				cert = external
			} else {
				log.Printf("External certificate not loaded: %v", err)
			}
		}
		https := &http.Server{
			Addr:      ":" + httpsPort,
			Handler:   h,
			TLSConfig: &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12},
		}
		return []*http.Server{https, redirectServer(":"+cfg.Port, httpsPort, nil)}, nil

	case config.TLSAutocert:
		m := autocertManager(cfg.TLSDomain, cfg.TLSCacheDir)
		https := &http.Server{
			Addr:      ":443",
			Handler:   h,
			TLSConfig: m.TLSConfig(),
		}
		return []*http.Server{https, redirectServer(":80", "", m.HTTPHandler)}, nil
	}

	return []*http.Server{{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}}, nil
}

// redirectServer sends every plain HTTP request to HTTPS. wrap lets the
// ACME manager answer its challenges first.
func redirectServer(addr, port string, wrap func(http.Handler) http.Handler) *http.Server {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if hostOnly, _, err := net.SplitHostPort(host); err == nil {
			host = hostOnly
		}
		if port != "" {
			host += ":" + port
		}
		http.Redirect(w, r, "https://"+host+r.URL.RequestURI(), http.StatusMovedPermanently)
	})
	if wrap != nil {
		h = wrap(h)
	}
	return &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
}
