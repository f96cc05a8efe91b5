package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"resume-builder/internal/config"
	"resume-builder/internal/pkg/jwt"

	"github.com/google/uuid"
)

func main() {
	userFlag := flag.String("user", "", "user id to embed; a random id is used when empty")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to JWT_ACCESS_EXPIRES_IN")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	userID := uuid.New()
	if raw := strings.TrimSpace(*userFlag); raw != "" {
		userID, err = uuid.Parse(raw)
		if err != nil {
			log.Fatalf("invalid -user: %v", err)
		}
	}

	expires := cfg.JWT.AccessExpiresIn
	if *ttl > 0 {
		expires = *ttl
	}

	token, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, expires).GenerateAccessToken(userID, *email)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	log.Printf("token for user_id=%s expires_in=%s", userID, expires.Round(time.Second))
	fmt.Println(token)
}
