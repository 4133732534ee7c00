package config

import (
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver            string        `mapstructure:"driver"`
	SQLitePath        string        `mapstructure:"sqlitePath"`
	KeepAliveInterval time.Duration `mapstructure:"keepAliveInterval"`
}

type ClientConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond"`
	Burst             int           `mapstructure:"burst"`
	ItemsPerPage      int           `mapstructure:"itemsPerPage"`
}

type OmConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Client   ClientConfig   `mapstructure:"client"`
	Om       OmConfig       `mapstructure:"om"`
}

var vp *viper.Viper

// LoadConfig reads config.json from the config directory. Missing keys keep
// their defaults and a missing file is not an error.
func LoadConfig(paths ...string) (Config, error) {
	vp = viper.New()

	var config Config

	vp.SetDefault("server.port", "8080")
	vp.SetDefault("server.shutdownTimeout", "10s")
	vp.SetDefault("database.driver", "postgres")
	vp.SetDefault("database.sqlitePath", "pim.db")
	vp.SetDefault("database.keepAliveInterval", "1m")
	vp.SetDefault("client.timeout", "10s")
	vp.SetDefault("client.requestsPerSecond", 0)
	vp.SetDefault("client.burst", 1)
	vp.SetDefault("client.itemsPerPage", 20)
	vp.SetDefault("om.timeout", "10s")

	vp.SetConfigName("config")
	vp.SetConfigType("json")
	if len(paths) == 0 {
		paths = []string{"config"}
	}
	for _, p := range paths {
		vp.AddConfigPath(p)
	}

	err := vp.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	err = vp.Unmarshal(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
