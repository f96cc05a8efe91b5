package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"resume-builder/internal/app"
	"resume-builder/internal/config"
	"resume-builder/internal/pkg/workerpool"

	"github.com/google/uuid"
)

func main() {
	resumeFlag := flag.String("resume", "", "comma separated resume ids to generate suggestions for")
	workers := flag.Int("workers", 4, "concurrent generations")
	rps := flag.Int("rps", 0, "max generations started per second (0 = unlimited)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	ids, err := parseIDs(*resumeFlag)
	if err != nil {
		log.Fatalf("provide -resume <uuid>[,<uuid>...]: %v", err)
	}

	if err := run(ids, *workers, *rps, *timeout); err != nil {
		log.Fatal(err)
	}
}

// run owns the container so it is closed on every return path.
func run(ids []uuid.UUID, workers, rps int, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to init container: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool := workerpool.New(workers, len(ids))
	pool.SetRateLimit(rps)
	for _, id := range ids {
		pool.Submit(workerpool.Task{Key: id.String(), Run: func(ctx context.Context) error {
			count, err := c.Suggestions.GenerateForResume(ctx, id)
			if err != nil {
				return err
			}
			log.Printf("suggestions generated resume_id=%s count=%d", id, count)
			return nil
		}})
	}
	pool.Close()

	failed := 0
	for r := range pool.Run(ctx) {
		if r.Err != nil {
			failed++
			log.Printf("generate suggestions failed resume_id=%s err=%v", r.Key, r.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d resumes failed", failed, len(ids))
	}
	return nil
}

func parseIDs(raw string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, errors.New("no resume ids")
	}
	return out, nil
}
