// Command server exposes the execution core over HTTP: validate_syntax and
// run_suite, plus ambient status/health endpoints. It is a demonstration
// collaborator, not part of the execution core itself.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/A1eksMa/PracticeRaptor/core"
)

func main() {
	if os.Getenv(core.ChildModeEnv) == "1" {
		if err := core.RunChild(os.Stdin, os.Stdout); err != nil {
			os.Exit(1)
		}
		return
	}

	suitePath := flag.String("suite", "", "optional YAML test-suite fixture to load at startup; its case count is logged and /run-suite does not use it")
	flag.Parse()

	cfg := core.Load()

	closer, err := core.SetupLogging(cfg, "server.log")
	if err != nil {
		log.Fatalf("setup logging: %v", err)
	}
	defer closer.Close()

	if *suitePath != "" {
		if _, _, cases, err := core.LoadFixture(*suitePath); err != nil {
			log.Printf("warning: failed to preload fixture %s: %v", *suitePath, err)
		} else {
			log.Printf("preloaded %d test cases from %s", len(cases), *suitePath)
		}
	}

	var metrics *core.MetricsService
	if client, err := core.NewRedisClient(cfg.RedisURL); err != nil {
		log.Printf("warning: redis unavailable, /status will report zero queue metrics: %v", err)
	} else {
		metrics = core.NewMetricsService(client)
	}

	sup := core.NewSupervisor(cfg.TerminationGraceMs)
	router := core.NewRouter(core.RouterDeps{
		Supervisor: sup,
		Config:     cfg,
		Metrics:    metrics,
		StartedAt:  time.Now(),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
