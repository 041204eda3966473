package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	noDeep  bool
)

var rootCmd = &cobra.Command{
	Use:   "redocx",
	Short: "Analyze and restyle DOCX documents",
	Long: `redocx inspects the style structure of DOCX documents (title/author/body
roles, per-run fonts, embedded image positions) and rebuilds them with
per-role style overrides.`,
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.redocx.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noDeep, "no-deep", false, "disable deep font detection")
}

// loadConfig wires viper: flags override environment, environment
// overrides the config file, the config file overrides defaults.
func loadConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".redocx")
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("REDOCX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("deep", true)
	viper.SetDefault("json-indent", true)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" && !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		}
	}

	if rootCmd.PersistentFlags().Changed("no-deep") {
		viper.Set("deep", !noDeep)
	}
}
