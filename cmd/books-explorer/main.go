// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the books-explorer proxy. Inside AWS
// Lambda it starts the runtime loop; elsewhere it is a CLI with commands to
// serve the API locally, run one search, and inspect the access log.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from the configured log level.
var logger = zap.NewNop()

// rootCmd is the base command for the books-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "books-explorer",
	Short: "Serverless proxy for the Google Books search API",
	Long: `books-explorer forwards a search query to the Google Books volumes API,
attaching an API key from GOOGLE_BOOKS_API_KEY or from the AWS Secrets Manager
secret named by GOOGLE_BOOKS_SECRET_NAME, and returns at most 10 reshaped
items with CORS headers.

Run without a command inside AWS Lambda to start the function handler.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString(keyLogLevel))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if inLambda() {
			return runLambda(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./books-explorer.yaml or ~/.config/books-explorer/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().String("secrets-dir", "", "read GOOGLE_BOOKS_SECRET_NAME from this directory instead of AWS Secrets Manager")
	viper.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(keySecretsDir, rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("books-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "books-explorer"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	defer func() { logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
