// Package config loads learnpath settings from a TOML file, then LEARNPATH_*
// environment variables, and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/psidex/learnpath/internal/engine"
	"github.com/psidex/learnpath/internal/lib"
	"github.com/psidex/learnpath/internal/picking"
)

const envPrefix = "LEARNPATH_"

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Generator GeneratorConfig `toml:"generator"`
	Layout    LayoutConfig    `toml:"layout"`
	View      ViewConfig      `toml:"view"`
	Events    EventsConfig    `toml:"events"`
	Log       LogConfig       `toml:"log"`
}

type ServerConfig struct {
	Address         string       `toml:"address" validate:"required"`
	TickInterval    lib.Duration `toml:"tick_interval" validate:"gt=0"`
	GenerateTimeout lib.Duration `toml:"generate_timeout" validate:"gt=0"`
	Metrics         bool         `toml:"metrics"`
}

// GeneratorConfig selects where payloads come from. Kind is one of mock, pathbuilder,
// http or grpc.
type GeneratorConfig struct {
	Kind        string `toml:"kind" validate:"oneof=mock pathbuilder http grpc"`
	URL         string `toml:"url" validate:"required_if=Kind http,omitempty,url"`
	Path        string `toml:"path"`
	GRPCAddress string `toml:"grpc_address" validate:"required_if=Kind grpc"`
	// Domains and KnowledgeGraph replace the built-in path builder data when both are set.
	Domains        string `toml:"domains" validate:"required_with=KnowledgeGraph"`
	KnowledgeGraph string `toml:"knowledge_graph" validate:"required_with=Domains"`
}

type LayoutConfig struct {
	RingSpacing float64 `toml:"ring_spacing" validate:"gt=0"`
	// InitialDepth is how many rings are built before expansion, 0 builds everything.
	InitialDepth int     `toml:"initial_depth" validate:"gte=0"`
	LevelStep    float64 `toml:"level_step" validate:"gt=0"`
	NodeSpacing  float64 `toml:"node_spacing" validate:"gt=0"`
	MaxRowWidth  float64 `toml:"max_row_width" validate:"gt=0"`
	ExpandRadius float64 `toml:"expand_radius" validate:"gt=0"`
}

type ViewConfig struct {
	Width             float64 `toml:"width" validate:"gt=0"`
	Height            float64 `toml:"height" validate:"gt=0"`
	ZoomMin           float64 `toml:"zoom_min" validate:"gt=0"`
	ZoomMax           float64 `toml:"zoom_max" validate:"gtfield=ZoomMin"`
	RotateSensitivity float64 `toml:"rotate_sensitivity" validate:"gt=0"`
	Orbit             bool    `toml:"orbit"`
	Seed              uint64  `toml:"seed"`
}

type EventsConfig struct {
	NATSURL string `toml:"nats_url" validate:"omitempty,url"`
	Subject string `toml:"subject" validate:"required_with=NATSURL"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `toml:"format" validate:"oneof=text json"`
}

func Default() *Config {
	lo := engine.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Address:         "127.0.0.1:8080",
			TickInterval:    lib.DurationFrom(time.Second / 30),
			GenerateTimeout: lib.DurationFrom(30 * time.Second),
			Metrics:         true,
		},
		Generator: GeneratorConfig{Kind: "mock", Path: "/process"},
		Layout: LayoutConfig{
			RingSpacing:  lo.Layout.RingSpacing,
			LevelStep:    lo.Layout.LevelStep,
			NodeSpacing:  lo.Layout.NodeSpacing,
			MaxRowWidth:  lo.Layout.MaxRowWidth,
			ExpandRadius: lo.Layout.ExpandRadius,
		},
		View: ViewConfig{
			Width:             lo.Viewport.Width,
			Height:            lo.Viewport.Height,
			ZoomMin:           lo.Interaction.ZoomMin,
			ZoomMax:           lo.Interaction.ZoomMax,
			RotateSensitivity: lo.Interaction.RotateSensitivity,
		},
		Events: EventsConfig{Subject: "learnpath.node.selected"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped when path is
// empty) and then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SERVER_ADDRESS":         &cfg.Server.Address,
		"GENERATOR_KIND":         &cfg.Generator.Kind,
		"GENERATOR_URL":          &cfg.Generator.URL,
		"GENERATOR_PATH":         &cfg.Generator.Path,
		"GENERATOR_GRPC_ADDRESS": &cfg.Generator.GRPCAddress,
		"NATS_URL":               &cfg.Events.NATSURL,
		"NATS_SUBJECT":           &cfg.Events.Subject,
		"LOG_LEVEL":              &cfg.Log.Level,
		"LOG_FORMAT":             &cfg.Log.Format,
	}
	for key, dst := range str {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "LAYOUT_INITIAL_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sLAYOUT_INITIAL_DEPTH: %w", envPrefix, err)
		}
		cfg.Layout.InitialDepth = n
	}
	if v, ok := lookup(envPrefix + "SERVER_TICK_INTERVAL"); ok {
		if err := cfg.Server.TickInterval.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sSERVER_TICK_INTERVAL: %w", envPrefix, err)
		}
	}
	if v, ok := lookup(envPrefix + "SERVER_METRICS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSERVER_METRICS: %w", envPrefix, err)
		}
		cfg.Server.Metrics = b
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(lib.Duration); ok {
			return d.Duration
		}
		return nil
	}, lib.Duration{})
	return v
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Engine maps the settings onto an engine configuration.
func (c *Config) Engine() engine.Config {
	ec := engine.DefaultConfig()
	ec.Layout.RingSpacing = c.Layout.RingSpacing
	ec.Layout.MaxDepth = c.Layout.InitialDepth
	ec.Layout.LevelStep = c.Layout.LevelStep
	ec.Layout.NodeSpacing = c.Layout.NodeSpacing
	ec.Layout.MaxRowWidth = c.Layout.MaxRowWidth
	ec.Layout.ExpandRadius = c.Layout.ExpandRadius
	ec.Interaction.ZoomMin = c.View.ZoomMin
	ec.Interaction.ZoomMax = c.View.ZoomMax
	ec.Interaction.RotateSensitivity = c.View.RotateSensitivity
	ec.Interaction.Orbit = c.View.Orbit
	ec.Viewport = picking.Viewport{Width: c.View.Width, Height: c.View.Height}
	ec.Seed = c.View.Seed
	return ec
}
