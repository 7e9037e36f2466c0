package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

// ProviderConfig durations are in milliseconds.
type ProviderConfig struct {
	URL               string `mapstructure:"url"`
	ReadyTimeout      int    `mapstructure:"readyTimeout"`
	HandshakeTimeout  int    `mapstructure:"handshakeTimeout"`
	StatePollInterval int    `mapstructure:"statePollInterval"`
}

type StorageConfig struct {
	Type   string        `mapstructure:"type"`
	Memory *MemoryConfig `mapstructure:"memory"`
	Badger *BadgerConfig `mapstructure:"badger"`
	Pebble *PebbleConfig `mapstructure:"pebble"`
	Redis  *RedisConfig  `mapstructure:"redis"`
}

type StorageType string

const (
	StorageTypeMemory StorageType = "memory"
	StorageTypeBadger StorageType = "badger"
	StorageTypePebble StorageType = "pebble"
	StorageTypeRedis  StorageType = "redis"
)

type MemoryConfig struct {
	MaxItems int `mapstructure:"maxItems"`
}

type BadgerConfig struct {
	Path string `mapstructure:"path"`
}

type PebbleConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
}

type BasicAuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type APIConfig struct {
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	BasicAuth BasicAuthConfig `mapstructure:"basicAuth"`
}

type WatchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	State        bool     `mapstructure:"state"`
	Transactions bool     `mapstructure:"transactions"`
	PreloadLimit int      `mapstructure:"preloadLimit"`
}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Provider ProviderConfig `mapstructure:"provider"`
	Storage  StorageConfig  `mapstructure:"storage"`
	API      APIConfig      `mapstructure:"api"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

var Cfg Config

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}

		viper.SetConfigName("secrets")
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error loading secrets file: %v", err)
			}
		}
	}

	// sets e.g. PROVIDER_URL to provider.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
