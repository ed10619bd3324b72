// Package config loads the apidoc server configuration from apidoc.yaml,
// APIDOC_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/vitalvas/apidoc/openapi"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Docs   DocsConfig   `mapstructure:"docs"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Engine          string        `mapstructure:"engine"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DocsConfig configures the documentation endpoints.
type DocsConfig struct {
	URL         string          `mapstructure:"url"`
	UI          string          `mapstructure:"ui"`
	Title       string          `mapstructure:"title"`
	Reload      bool            `mapstructure:"reload"`
	DisableYAML bool            `mapstructure:"disable_yaml"`
	SwaggerUI   SwaggerUIConfig `mapstructure:"swagger_ui"`
	Auth        AuthConfig      `mapstructure:"auth"`
}

// SwaggerUIConfig holds the SwaggerUIBundle options exposed in the config
// file. Keys are snake_case here because viper folds key case.
type SwaggerUIConfig struct {
	DocExpansion             string `mapstructure:"doc_expansion"`
	DeepLinking              bool   `mapstructure:"deep_linking"`
	DefaultModelsExpandDepth int    `mapstructure:"default_models_expand_depth"`
	TryItOutEnabled          bool   `mapstructure:"try_it_out_enabled"`
	PersistAuthorization     bool   `mapstructure:"persist_authorization"`
}

// Options returns the options keyed by their SwaggerUIBundle names. Unset
// switches are left out so the UI defaults apply.
func (s SwaggerUIConfig) Options() map[string]any {
	opts := map[string]any{
		"defaultModelsExpandDepth": s.DefaultModelsExpandDepth,
	}
	if s.DocExpansion != "" {
		opts["docExpansion"] = s.DocExpansion
	}
	if s.DeepLinking {
		opts["deepLinking"] = true
	}
	if s.TryItOutEnabled {
		opts["tryItOutEnabled"] = true
	}
	if s.PersistAuthorization {
		opts["persistAuthorization"] = true
	}
	return opts
}

// AuthConfig enables Basic auth on the docs endpoints when both fields are set.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Enabled reports whether docs auth is configured.
func (a AuthConfig) Enabled() bool {
	return a.Username != "" && a.Password != ""
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Engines supported by the serve command.
const (
	EngineChi   = "chi"
	EngineFiber = "fiber"
)

var docsUIs = map[string]openapi.DocsUI{
	"swagger": openapi.DocsSwaggerUI,
	"rapidoc": openapi.DocsRapiDoc,
	"redoc":   openapi.DocsRedoc,
}

// Load reads the configuration. An empty path searches the working
// directory for apidoc.yaml; a missing file there is not an error. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.engine", EngineChi)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("docs.url", "/docs")
	v.SetDefault("docs.ui", "swagger")
	v.SetDefault("docs.title", "")
	v.SetDefault("docs.reload", false)
	v.SetDefault("docs.disable_yaml", false)
	v.SetDefault("docs.swagger_ui.doc_expansion", "list")
	v.SetDefault("docs.swagger_ui.deep_linking", true)
	v.SetDefault("docs.swagger_ui.default_models_expand_depth", 1)
	v.SetDefault("docs.swagger_ui.try_it_out_enabled", false)
	v.SetDefault("docs.swagger_ui.persist_authorization", false)
	v.SetDefault("docs.auth.username", "")
	v.SetDefault("docs.auth.password", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("apidoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("APIDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerated values and path formats.
func (c *Config) Validate() error {
	switch c.Server.Engine {
	case EngineChi, EngineFiber:
	default:
		return fmt.Errorf("server.engine must be %q or %q, got: %q", EngineChi, EngineFiber, c.Server.Engine)
	}

	if _, ok := docsUIs[c.Docs.UI]; !ok {
		return fmt.Errorf("docs.ui must be one of swagger, rapidoc, redoc, got: %q", c.Docs.UI)
	}

	if !strings.HasPrefix(c.Docs.URL, "/") {
		return fmt.Errorf("docs.url must start with '/', got: %s", c.Docs.URL)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// HandleConfig converts the docs section into serving options.
func (d DocsConfig) HandleConfig() *openapi.HandleConfig {
	return &openapi.HandleConfig{
		UI:              docsUIs[d.UI],
		Title:           d.Title,
		SwaggerUIConfig: d.SwaggerUI.Options(),
		DisableYAML:     d.DisableYAML,
		Reload:          d.Reload,
	}
}

// ZerologLevel returns the parsed log level, defaulting to info.
func (l LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
