// Command worker pulls suite-run jobs off the Redis queue and drives them
// through the execution core, one job per goroutine slot, reporting
// heartbeats and processed/failed counters back to Redis for cmd/server's
// /status endpoint to read.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
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

	cfg := core.Load()

	closer, err := core.SetupLogging(cfg, "worker.log")
	if err != nil {
		log.Fatalf("setup logging: %v", err)
	}
	defer closer.Close()

	rawClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	queue := core.NewRedisQueue(rawClient)
	sup := core.NewSupervisor(cfg.TerminationGraceMs)

	workerID := core.NewWorkerID()
	hostname, _ := os.Hostname()
	hb := core.NewHeartbeatState(workerID, hostname, cfg.WorkerConcurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hb.Start(ctx, rawClient)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("shutting down worker")
		cancel()
	}()

	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerConcurrency; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			runLoop(ctx, queue, sup, hb)
		}(i)
	}
	wg.Wait()
}

func runLoop(ctx context.Context, queue *core.RedisQueue, sup *core.Supervisor, hb *core.HeartbeatState) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := queue.Reserve(ctx, core.PendingQueueKey, core.ProcessingQueueKey, core.DefaultVisibilityTimeout)
		if err != nil {
			time.Sleep(200 * time.Millisecond)
			continue
		}

		job, err := core.DecodeJob(payload)
		if err != nil {
			log.Printf("dropping malformed job: %v", err)
			_ = queue.Ack(ctx, core.ProcessingQueueKey, payload)
			continue
		}

		hb.JobStarted(job.ID)
		verdict := core.RunSuite(job.Source, job.Cases, job.EntryPoint, job.DeadlineMs, sup)
		var runErr error
		if verdict.Fatal != nil {
			runErr = verdict.Fatal
		}
		hb.JobFinished(job.ID, runErr)

		_ = queue.Ack(ctx, core.ProcessingQueueKey, payload)
	}
}
