package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/psidex/learnpath/internal/animation"
	"github.com/psidex/learnpath/internal/config"
	"github.com/psidex/learnpath/internal/engine"
	"github.com/psidex/learnpath/internal/generator"
	"github.com/psidex/learnpath/internal/lib"
)

// loadEngine builds an engine from the config and resolves one generation for topic.
func loadEngine(ctx context.Context, args []string, renderer animation.Renderer) (*engine.Engine, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := lib.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}

	payload, err := fetchPayload(ctx, cfg, strings.Join(args, " "))
	if err != nil {
		return nil, nil, err
	}

	e := engine.New(cfg.Engine(), logger, renderer, nil)
	if err := e.Load(payload); err != nil {
		return nil, nil, err
	}
	if expandAll {
		logger.Info("expanded", "nodes", e.ExpandAll())
	}
	return e, logger, nil
}

func fetchPayload(ctx context.Context, cfg *config.Config, topic string) ([]byte, error) {
	if inputPath != "" {
		return os.ReadFile(inputPath)
	}
	if topic == "" {
		return nil, errors.New("a topic or --input is required")
	}

	gen, closeGen, err := generator.FromConfig(cfg.Generator, cfg.Server.GenerateTimeout.Duration)
	if err != nil {
		return nil, err
	}
	defer closeGen()

	ctx, cancel := context.WithTimeout(ctx, cfg.Server.GenerateTimeout.Duration)
	defer cancel()

	payload, err := gen.Generate(ctx, generator.Request{Topic: topic, Level: level})
	if err != nil {
		return nil, fmt.Errorf("generate %q: %w", topic, err)
	}
	return payload, nil
}
