// Command pyapi is the CLI front-end for the loader/differ (spec.md §6
// "CLI surface"). Configuration follows the teacher pack's cobra+viper
// pattern (cmmoran-apimodelgen's cmd/root.go: persistent --config flag,
// cobra.OnInitialize wiring viper, log level bound through slog).
package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pyapi",
	Short: "Extract, serialize, and diff Python public API surfaces",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default .pyapi.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newCheckCommand())
}

// initConfig wires viper to PYAPI_* environment variables and an optional
// .pyapi.yaml, matching spec §6's "bindable via flags, env (PYAPI_*), or a
// .pyapi.yaml config file".
func initConfig() {
	var level slog.Level
	if err := (&level).UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	viper.SetEnvPrefix("PYAPI")
	viper.AutomaticEnv()
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".pyapi")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		slog.Debug("pyapi: no config file loaded", "err", err)
	}
}

func fatal(err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, err)
	os.Exit(1)
}
