package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"resume-builder/internal/app"
	"resume-builder/internal/config"
	"resume-builder/internal/database/seeder"

	"github.com/google/uuid"
)

func main() {
	userFlag := flag.String("user", "", "user id that owns the demo resume")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	userID, err := uuid.Parse(strings.TrimSpace(*userFlag))
	if err != nil {
		log.Fatalf("provide -user <uuid>: %v", err)
	}

	if err := run(userID, *timeout); err != nil {
		log.Fatal(err)
	}
}

func run(userID uuid.UUID, timeout time.Duration) error {
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

	runner := seeder.Runner{Seeders: seeder.Defaults(userID), Logger: c.Logger}
	if err := runner.Run(ctx, c.DB); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	log.Printf("demo resume seeded user_id=%s resume_id=%s", userID, seeder.DemoResumeID(userID))
	return nil
}
