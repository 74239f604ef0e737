package generator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/learnpath/internal/config"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.GeneratorConfig
		want any
	}{
		{"default", config.GeneratorConfig{}, Mock{}},
		{"mock", config.GeneratorConfig{Kind: "mock"}, Mock{}},
		{"pathbuilder", config.GeneratorConfig{Kind: "pathbuilder"}, &PathBuilder{}},
		{"http", config.GeneratorConfig{Kind: "http", URL: "http://127.0.0.1:5000"}, &HTTPClient{}},
		{"grpc", config.GeneratorConfig{Kind: "grpc", GRPCAddress: "127.0.0.1:50051"}, &GRPCClient{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, closeFn, err := FromConfig(tt.cfg, time.Second)
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			defer closeFn()
			assert.IsType(t, tt.want, gen)
		})
	}
}

func TestFromConfigUnknownKind(t *testing.T) {
	_, closeFn, err := FromConfig(config.GeneratorConfig{Kind: "carrier-pigeon"}, time.Second)
	assert.Error(t, err)
	assert.NoError(t, closeFn())
}

func TestFromConfigLoadsPathBuilderFiles(t *testing.T) {
	dir := t.TempDir()
	domains := filepath.Join(dir, "domains.json")
	kg := filepath.Join(dir, "kg.json")
	require.NoError(t, os.WriteFile(domains, defaultDomains, 0o644))
	require.NoError(t, os.WriteFile(kg, defaultKnowledgeGraph, 0o644))

	gen, _, err := FromConfig(config.GeneratorConfig{Kind: "pathbuilder", Domains: domains, KnowledgeGraph: kg}, time.Second)
	require.NoError(t, err)
	assert.IsType(t, &PathBuilder{}, gen)

	_, _, err = FromConfig(config.GeneratorConfig{Kind: "pathbuilder", Domains: filepath.Join(dir, "missing"), KnowledgeGraph: kg}, time.Second)
	assert.Error(t, err)
}
