// Package utils carries small helpers shared by the lmbs binaries.
package utils

import (
	"github.com/blagojts/viper"
	"github.com/spf13/pflag"
)

// SetupConfigFile layers an optional config file and LMBS_* environment
// variables over the command line flags. Explicitly set flags win over
// the config file; the config file wins over flag defaults.
func SetupConfigFile() error {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("lmbs")
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; flags and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}
