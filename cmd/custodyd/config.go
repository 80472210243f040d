package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagGenesis  = "genesis"
	flagJournal  = "journal"
	flagAs       = "as"
)

// config holds the settings shared by all commands. Values are taken from
// flags, CUSTODY_* environment variables and an optional config file in the
// home directory, in this order of precedence.
type config struct {
	Home     string `mapstructure:"home"`
	LogLevel string `mapstructure:"log_level"`
	Genesis  string `mapstructure:"genesis"`
	Journal  string `mapstructure:"journal"`
	As       string `mapstructure:"as"`
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".custodyd")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("custody")
	v.AutomaticEnv()
	v.SetDefault(flagHome, defaultHome())
	v.SetDefault(flagLogLevel, "info")
	return v
}

// loadConfig binds the flags of the command and reads the config file of
// the resolved home directory.
func loadConfig(v *viper.Viper, cmd *cobra.Command) (config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, err
	}
	v.SetConfigName("config")
	v.AddConfigPath(v.GetString(flagHome))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, err
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return config{}, err
	}
	if c.Journal == "" {
		c.Journal = filepath.Join(c.Home, "events.db")
	}
	return c, nil
}
