// Package app implements the main application commands.
package app

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/logger"
)

// EnvConfigPath overrides the --config flag.
const EnvConfigPath = "AGENCY_ADMIN_CONFIG_PATH"

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "agency-admin",
		Short: "agency-admin runs the back-office of the agency website",
		Long: `agency-admin serves the back-office used to manage the agency website
content (blog, services, portfolio, careers, pages and contact messages)
and the public JSON api the website reads it from.`,
		Args:              cobra.OnlyValidArgs,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String("config", "./etc/", "directory holding main.toml")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindEnv("config", EnvConfigPath)
}

// loadConfig reads .env, the configuration and initializes the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	// .env is optional
	_ = godotenv.Load()

	var err error
	if cfg, err = config.ReadConfig(viper.GetString("config")); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
