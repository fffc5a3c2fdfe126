// Package config loads process settings from an optional YAML file, a .env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/persist"
)

// EnvPrefix prefixes every environment override, e.g. LABSTOCK_SERVER_ADDR.
const EnvPrefix = "LABSTOCK"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Device    DeviceConfig    `mapstructure:"device"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Persist   PersistConfig   `mapstructure:"persist"`
	Log       LogConfig       `mapstructure:"log"`
	Cover     CoverConfig     `mapstructure:"cover"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DeviceConfig struct {
	Path string `mapstructure:"path"`
}

type RemoteConfig struct {
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Table   string        `mapstructure:"table"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type InventoryConfig struct {
	Threshold  int  `mapstructure:"threshold"`
	AutoStatus bool `mapstructure:"auto_status"`
}

type PersistConfig struct {
	Workers int `mapstructure:"workers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type CoverConfig struct {
	Default string `mapstructure:"default"`
}

// Persist returns the remote connection parameters.
func (c RemoteConfig) Persist() persist.RemoteConfig {
	return persist.RemoteConfig{URL: c.URL, Key: c.Key, Table: c.Table, Timeout: c.Timeout}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("device.path", "labstock.sqlite3")
	v.SetDefault("remote.table", persist.DefaultTable)
	v.SetDefault("remote.timeout", 30*time.Second)
	v.SetDefault("inventory.threshold", model.DefaultThreshold)
	v.SetDefault("inventory.auto_status", true)
	v.SetDefault("persist.workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("cover.default", "")
}

// Load reads configFile, or labstock.yaml from . or ./configs when it is
// empty, then applies envFile and the environment. Missing files are not
// errors.
func Load(configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("labstock")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Inventory.Threshold = model.ClampThreshold(cfg.Inventory.Threshold)
	return &cfg, nil
}

// bindEnv registers the hosted-table variable names used by existing
// deployments next to the prefixed ones.
func bindEnv(v *viper.Viper) {
	v.BindEnv("remote.url", EnvPrefix+"_REMOTE_URL", "SUPABASE_URL")
	v.BindEnv("remote.key", EnvPrefix+"_REMOTE_KEY", "SUPABASE_ANON_KEY")
}
