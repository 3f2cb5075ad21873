package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"colsweep/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "colsweep",
	Short: "Profile database tables and flag droppable columns",
	Long: "Colsweep - A CLI tool that profiles a database table's columns (null ratio, cardinality,\n" +
		"zero ratio, empty strings) and flags candidates for removal before a cleanup migration.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Credentials commonly live in a .env file next to the project.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home + "/.colsweep")
	}

	viper.SetEnvPrefix("COLSWEEP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay for now
	}
}
