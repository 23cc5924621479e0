// Command stafftoken mints a staff bearer token signed with JWT_SECRET.
//
//	stafftoken -role manager [-id <uuid>]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"roomledger/internal/domain/actor"
	"roomledger/internal/pkg/config"
	"roomledger/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	roleFlag := flag.String("role", actor.RoleReceptionist.String(), "receptionist or manager")
	idFlag := flag.String("id", "", "staff id (random when empty)")
	flag.Parse()

	var cfg config.JWTConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, *roleFlag, *idFlag); err != nil {
		slog.Error("failed to mint token", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.JWTConfig, roleName, id string) error {
	role, err := actor.NewRole(roleName)
	if err != nil {
		return err
	}

	staffID := uuid.New()
	if id != "" {
		if staffID, err = uuid.Parse(id); err != nil {
			return err
		}
	}

	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		return err
	}

	token, err := jwt.NewService(cfg.Secret, duration).GenerateToken(staffID, role)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
