package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/server"
)

var version = "0.1.0"

func main() {
	port := flag.String("port", "", "HTTP port (overrides PORT)")
	grpcAddr := flag.String("grpc", "", "gRPC listen address (overrides GRPC_ADDR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *grpcAddr != "" {
		cfg.GRPC.Address = *grpcAddr
	}

	srv, err := server.NewServer(cfg, version)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		srv.Close()
		os.Exit(1)
	}
}
