// Package config loads runtime settings from the environment (and an
// optional YAML file) and owns construction of the store handle. Nothing
// here is a singleton: callers hold the Config and the Querier it opens.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/energy-oracle/eo-api/internal/store"
)

// Store backend selectors.
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
)

// Config is the full runtime configuration. Environment variables use the
// EO_ prefix: EO_STORE_BACKEND, EO_POSTGREST_URL, EO_SERVICE_KEY,
// EO_POSTGRES_DSN, EO_HOST, EO_PORT, EO_MODE, EO_CONTRACT_DIR.
type Config struct {
	APITitle   string `mapstructure:"api_title"`
	APIVersion string `mapstructure:"api_version"`

	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "debug" or "release"

	StoreBackend string `mapstructure:"store_backend"`
	PostgRESTURL string `mapstructure:"postgrest_url"`
	ServiceKey   string `mapstructure:"service_key"`
	PostgresDSN  string `mapstructure:"postgres_dsn"`

	ContractDir string `mapstructure:"contract_dir"`
}

// Load reads configuration from the environment and, when cfgFile is
// non-empty (or ./eo-api.yaml exists), a YAML file. Environment wins.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_title", "EnergyOracle API")
	v.SetDefault("api_version", "0.1.0")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("mode", "release")
	v.SetDefault("store_backend", BackendPostgREST)
	v.SetDefault("contract_dir", "contracts")
	// Registered with empty defaults so Unmarshal sees env-only values.
	v.SetDefault("postgrest_url", "")
	v.SetDefault("service_key", "")
	v.SetDefault("postgres_dsn", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("eo-api")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// Optional; ignore absence but not parse errors.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendPostgREST:
		if c.PostgRESTURL == "" {
			return fmt.Errorf("postgrest_url is required for the %s backend", BackendPostgREST)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown store_backend %q", c.StoreBackend)
	}
	return nil
}

// OpenStore builds the configured store handle. The caller owns its
// lifecycle.
func (c *Config) OpenStore() (store.Querier, error) {
	switch c.StoreBackend {
	case BackendPostgres:
		return store.OpenPostgres(c.PostgresDSN)
	default:
		return store.NewPostgRESTClient(c.PostgRESTURL, c.ServiceKey), nil
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
