// Command admin-token mints a JWT for the admin API. This service has
// no login flow; tokens for staff and admins are issued offline and
// handed out through the deployment's secret channel.
//
// Usage:
//
//	admin-token --user=<uuid> --role=ADMIN
//
// Requires AUTH_JWT_SECRET (and optionally AUTH_JWT_ISSUER,
// AUTH_TOKEN_TTL) from the environment or config file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/vecindario/backend/internal/auth"
	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/domain"
)

func main() {
	userFlag := flag.String("user", "", "operator user UUID (token subject)")
	roleFlag := flag.String("role", string(domain.UserRoleStaff), "STAFF or ADMIN")
	flag.Parse()

	if *userFlag == "" {
		fmt.Fprintln(os.Stderr, "Usage: admin-token --user=<uuid> --role=ADMIN")
		os.Exit(1)
	}

	operatorID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("invalid user UUID: %v", err)
	}

	role := domain.UserRole(*roleFlag)
	if role != domain.UserRoleStaff && role != domain.UserRoleAdmin {
		log.Fatalf("role must be %s or %s", domain.UserRoleStaff, domain.UserRoleAdmin)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	manager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	token, err := manager.GenerateAccessToken(operatorID, string(role))
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
