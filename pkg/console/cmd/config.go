package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alibaba/longstack/pkg/stack"
)

const envPrefix = "LONGSTACK"

type Config struct {
	LogLevel       string `yaml:"logLevel" mapstructure:"logLevel"`
	Diagnostic     bool   `yaml:"diagnostic" mapstructure:"diagnostic"`
	MaxCapacity    int    `yaml:"maxCapacity" mapstructure:"maxCapacity"`
	NegativeAsChar bool   `yaml:"negativeAsChar" mapstructure:"negativeAsChar"`
	MetricsAddr    string `yaml:"metricsAddr" mapstructure:"metricsAddr"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:       "warning",
		MaxCapacity:    stack.DefaultMaxCapacity,
		NegativeAsChar: true,
	}
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":        "logLevel",
	"diagnostic":       "diagnostic",
	"max-capacity":     "maxCapacity",
	"negative-as-char": "negativeAsChar",
	"metrics-addr":     "metricsAddr",
}

func bindFlags(fs *pflag.FlagSet) {
	def := defaultConfig()
	fs.StringP("config", "c", "", "Config file path for longstack")
	fs.String("log-level", def.LogLevel, "Log level of longstack itself")
	fs.BoolP("diagnostic", "x", def.Diagnostic, "Enable diagnostic mode, trace stack operations to stderr")
	fs.Int("max-capacity", def.MaxCapacity, "Largest stack that can be allocated")
	fs.Bool("negative-as-char", def.NegativeAsChar, "Write negative values as characters when writing to stdout")
	fs.String("metrics-addr", def.MetricsAddr, "Address to serve prometheus metrics on, disabled when empty")
}

// loadConfig merges defaults, the config file, LONGSTACK_* environment
// variables and changed flags, in increasing priority.
func loadConfig(fs *pflag.FlagSet) (*Config, *viper.Viper, error) {
	v := viper.New()

	def := defaultConfig()
	v.SetDefault("logLevel", def.LogLevel)
	v.SetDefault("diagnostic", def.Diagnostic)
	v.SetDefault("maxCapacity", def.MaxCapacity)
	v.SetDefault("negativeAsChar", def.NegativeAsChar)
	v.SetDefault("metricsAddr", def.MetricsAddr)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, errors.Wrapf(err, "failed bind flag %s", name)
			}
		}
	}

	path, _ := fs.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, errors.Wrapf(err, "failed read config file %s", path)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, nil, errors.Wrap(err, "failed parse config")
	}
	if config.MaxCapacity < 0 {
		return nil, nil, errors.Errorf("invalid max capacity %d", config.MaxCapacity)
	}
	return config, v, nil
}
