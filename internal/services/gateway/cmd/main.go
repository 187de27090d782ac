package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrotech-lab/soiltrack/internal/services/gateway/app"
)

func main() {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw := app.NewGateway(app.Config{
		SoilTestBaseURL: cfg.SoilTestURL,
		SoilTestPath:    cfg.SoilTestPath,
		TrendBaseURL:    cfg.TrendURL,
		TrendPath:       cfg.TrendPath,
		HTTPTimeout:     time.Duration(cfg.TimeoutMs) * time.Millisecond,
		BreakerFailures: cfg.CBFails,
		BreakerOpenFor:  time.Duration(cfg.CBOpenMs) * time.Millisecond,
		Logger:          log.Default(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.NewMux(gw),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("gateway: HTTP listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Printf("gateway: shutting down...")

	shCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownGraceS)*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	log.Println("gateway: shutdown complete")
}
