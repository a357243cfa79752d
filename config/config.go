package config

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

var (
	defaultPluginConfig = make(map[string]func() Configuration)
)

// Configuration is the interface every plugin configuration must implement.
type Configuration interface {
	Validate() error
	yaml.Unmarshaler
}

// RegisterDefaultPluginConfig registers the default configuration constructor for the plugin.
// fn must return a new instance on every call.
func RegisterDefaultPluginConfig(name string, fn func() Configuration) {
	defaultPluginConfig[name] = fn
}

// DefaultConfig return the default configuration.
// If config file is not provided, gcolord will start with DefaultConfig.
func DefaultConfig() Config {
	c := Config{
		Store: DefaultStoreConfig,
		Query: DefaultQueryConfig,
		API:   DefaultAPI,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		PidFile: getDefaultPidFile(),
		Plugins: make(PluginConfig),
	}
	for name, fn := range defaultPluginConfig {
		c.Plugins[name] = fn()
	}
	return c
}

// LogConfig is use to configure the log behaviors.
type LogConfig struct {
	// Level is the log level, possible values: debug, info, warn, error, dpanic, panic, fatal.
	Level string `yaml:"level"`
	// Format is the log encoding, possible values: console, json.
	Format string `yaml:"format"`
}

func (l LogConfig) Validate() error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if l.Format != "console" && l.Format != "json" {
		return fmt.Errorf("invalid log format: %s", l.Format)
	}
	return nil
}

type PluginConfig map[string]Configuration

func (p PluginConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	for _, v := range p {
		err := unmarshal(v)
		if err != nil {
			return err
		}
	}
	return nil
}

// Config is the configration for gcolord.
type Config struct {
	Store   Store        `yaml:"store"`
	Query   Query        `yaml:"query"`
	API     API          `yaml:"api"`
	Log     LogConfig    `yaml:"log"`
	PidFile string       `yaml:"pid_file"`
	Plugins PluginConfig `yaml:"plugins"`
}

func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type config Config
	raw := config(DefaultConfig())
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if raw.Plugins == nil {
		raw.Plugins = make(PluginConfig)
	}
	for name, fn := range defaultPluginConfig {
		if raw.Plugins[name] == nil {
			raw.Plugins[name] = fn()
		}
	}
	*c = Config(raw)
	return nil
}

func (c Config) Validate() error {
	err := c.Store.Validate()
	if err != nil {
		return err
	}
	err = c.Query.Validate()
	if err != nil {
		return err
	}
	err = c.API.Validate()
	if err != nil {
		return err
	}
	err = c.Log.Validate()
	if err != nil {
		return err
	}
	for name, conf := range c.Plugins {
		err := conf.Validate()
		if err != nil {
			return errors.Wrapf(err, "plugin %s", name)
		}
	}
	return nil
}

// ParseConfig reads and validates the configuration file.
// An empty filePath returns DefaultConfig.
func ParseConfig(filePath string) (c Config, err error) {
	if filePath == "" {
		return DefaultConfig(), nil
	}
	b, err := ioutil.ReadFile(filePath)
	if err != nil {
		return c, err
	}
	c = DefaultConfig()
	err = yaml.Unmarshal(b, &c)
	if err != nil {
		return c, err
	}
	err = c.Validate()
	if err != nil {
		return Config{}, err
	}
	return c, nil
}

// GetLogger builds a zap logger from the log configuration.
func (c Config) GetLogger(config LogConfig) (l *zap.Logger, err error) {
	var logLevel zapcore.Level
	err = logLevel.UnmarshalText([]byte(config.Level))
	if err != nil {
		return
	}
	lc := zap.NewDevelopmentConfig()
	if config.Format == "json" {
		lc = zap.NewProductionConfig()
	}
	lc.Level = zap.NewAtomicLevelAt(logLevel)
	return lc.Build()
}
