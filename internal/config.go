package internal

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tuannm99/novacol/internal/types"
)

type NovaColConfig struct {
	AppName string `mapstructure:"app_name"`

	Store struct {
		Workdir  string `mapstructure:"workdir"`
		MaxTypes int    `mapstructure:"max_types"`
	} `mapstructure:"store"`

	Log struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`
}

func LoadConfig(path string) (*NovaColConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "novacol")
	v.SetDefault("store.workdir", "./data")
	v.SetDefault("store.max_types", types.DefaultMaxDynamicTypes)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg NovaColConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Store.MaxTypes < 1 || cfg.Store.MaxTypes > types.MaxDynamicTypes {
		return nil, fmt.Errorf("store.max_types must be between 1 and %d", types.MaxDynamicTypes)
	}
	return &cfg, nil
}
