package main

import (
	"log"
	"net"

	"github.com/agencia43/diagnostico-pdp/internal/config"
	"github.com/agencia43/diagnostico-pdp/internal/httpapi"
	"github.com/agencia43/diagnostico-pdp/internal/mailer"
	"github.com/agencia43/diagnostico-pdp/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	srv := httpapi.NewServer(cfg, db, mailer.New(cfg.Email))

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	log.Printf("diagnostico-pdp server listening on %s", addr)
	if err := srv.Router().Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
