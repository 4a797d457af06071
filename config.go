package freefall

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

const (
	// ConfigEnv is the environment variable pointing to the directory of conf.toml.
	ConfigEnv        = "FREEFALL_CONFIG"
	defaultOutputDir = "./output"
)

var (
	cfgOnce  sync.Once
	settings = Settings{}
	cfgErr   error
)

// Settings holds the machine-level configuration, as opposed to a scenario.
type Settings struct {
	OutputDir string
}

// LoadConfig reads conf.toml from the provided directory.
func LoadConfig(dir string) (Settings, error) {
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetDefault("general.output_path", defaultOutputDir)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("%s/conf.toml: %w", dir, err)
	}
	return Settings{OutputDir: v.GetString("general.output_path")}, nil
}

// Config returns the freefall configuration, loaded once from $FREEFALL_CONFIG.
// Without that variable, outputs go to ./output.
func Config() (Settings, error) {
	cfgOnce.Do(func() {
		confPath := os.Getenv(ConfigEnv)
		if confPath == "" {
			settings = Settings{OutputDir: defaultOutputDir}
			return
		}
		settings, cfgErr = LoadConfig(confPath)
	})
	return settings, cfgErr
}
