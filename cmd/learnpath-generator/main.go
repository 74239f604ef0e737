package main

import (
	"flag"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/psidex/learnpath/internal/config"
	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/lib"
)

// Default bind address, set using LEARNPATH_GENERATOR_BIND_ADDRESS
const defaultBindAddress = "0.0.0.0:50051"

func main() {
	configPath := flag.String("c", "", "the TOML config file to load")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Generator.Kind == "grpc" {
		log.Fatal("generator kind grpc cannot be served, pick mock, pathbuilder or http")
	}

	logger, err := lib.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}

	gen, closeGen, err := generator.FromConfig(cfg.Generator, cfg.Server.GenerateTimeout.Duration)
	if err != nil {
		log.Fatal(err)
	}
	defer closeGen()

	address := defaultBindAddress
	if addr := os.Getenv("LEARNPATH_GENERATOR_BIND_ADDRESS"); addr != "" {
		address = addr
	}

	lis, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	s := grpc.NewServer()
	generator.RegisterPathServiceServer(s, generator.NewServer(gen, logger))

	log.Printf("serving %s generator on %s", cfg.Generator.Kind, address)
	if err := s.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
