package main

import (
	"os"
	"time"

	"github.com/Astemirdum/lumina-library/library/app"
	"github.com/Astemirdum/lumina-library/library/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type serveOptions struct {
	envFile  string
	logLevel string
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger HTTP API",
		Long: `Serve the catalog, lending and assistant HTTP API.

Configuration is read from the environment. Variables found in --env-file
are loaded first; a missing default .env file is not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnv(opts.envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			level, err := zapcore.ParseLevel(opts.logLevel)
			if err != nil {
				return errors.Wrap(err, "log-level")
			}
			cfg := config.NewConfig(
				config.WithLogLevel(level),
				config.WithWriteTimeout(time.Minute),
			)
			return app.Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "debug", "log level used when LOG_LEVEL is not set")
	return cmd
}

func loadEnv(path string, required bool) error {
	if _, err := os.Stat(path); err != nil && !required {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(err, "load envs from "+path)
	}
	return nil
}
