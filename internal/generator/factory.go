package generator

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/psidex/learnpath/internal/config"
)

// FromConfig builds the generator cfg.Kind names. The returned close function releases
// any connection the generator holds and is never nil.
func FromConfig(cfg config.GeneratorConfig, timeout time.Duration) (Generator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case "", "mock":
		return Mock{}, noop, nil

	case "pathbuilder":
		if cfg.Domains == "" {
			return DefaultPathBuilder(), noop, nil
		}
		domains, err := os.ReadFile(cfg.Domains)
		if err != nil {
			return nil, noop, fmt.Errorf("read domains: %w", err)
		}
		kg, err := os.ReadFile(cfg.KnowledgeGraph)
		if err != nil {
			return nil, noop, fmt.Errorf("read knowledge graph: %w", err)
		}
		pb, err := LoadPathBuilder(domains, kg)
		if err != nil {
			return nil, noop, err
		}
		return pb, noop, nil

	case "http":
		return NewHTTPClient(cfg.URL, cfg.Path, &http.Client{Timeout: timeout}), noop, nil

	case "grpc":
		conn, err := grpc.NewClient(cfg.GRPCAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, noop, fmt.Errorf("dial generator %s: %w", cfg.GRPCAddress, err)
		}
		return NewGRPCClient(conn), conn.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown generator kind %q", cfg.Kind)
}
