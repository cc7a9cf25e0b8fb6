package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	NotFoundFallthrough = "fallthrough"
	NotFoundStatus      = "status"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      int    `env:"PORT" default:"8088"`
	AdminAddr string `env:"ADMIN_ADDR"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"json"`

	ServerBundlePath   string `env:"SERVER_BUNDLE_PATH" default:"app/ssr-bundle/vue-ssr-server-bundle.json"`
	TemplatePath       string `env:"TEMPLATE_PATH" default:"app/template/index.template.html"`
	ClientManifestPath string `env:"CLIENT_MANIFEST_PATH" default:"dist/vue-ssr-client-manifest.json"`
	DistDir            string `env:"DIST_DIR" default:"dist"`

	PageTitle    string `env:"PAGE_TITLE" default:"同构测试"`
	NotFoundMode string `env:"NOT_FOUND_MODE" default:"fallthrough"`
	MinifyHTML   bool   `env:"MINIFY_HTML" default:"false"`

	NodeBinary             string        `env:"NODE_BINARY" default:"node"`
	RendererWorkDir        string        `env:"RENDERER_WORKDIR" default:"."`
	RendererStartupTimeout time.Duration `env:"RENDERER_STARTUP_TIMEOUT" default:"5s"`
	RenderTimeout          time.Duration `env:"RENDER_TIMEOUT" default:"0s"`
	SlowRenderThreshold    time.Duration `env:"SLOW_RENDER_THRESHOLD" default:"1s"`
	ShutdownTimeout        time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env is the normal production case.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	switch c.NotFoundMode {
	case NotFoundFallthrough, NotFoundStatus:
	default:
		return fmt.Errorf("NOT_FOUND_MODE must be %q or %q, got %q", NotFoundFallthrough, NotFoundStatus, c.NotFoundMode)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"console\", got %q", c.LogFormat)
	}

	if c.ServerBundlePath == "" {
		return errors.New("SERVER_BUNDLE_PATH is required")
	}
	if c.TemplatePath == "" {
		return errors.New("TEMPLATE_PATH is required")
	}

	if c.RenderTimeout < 0 {
		return errors.New("RENDER_TIMEOUT must not be negative")
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
