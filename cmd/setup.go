package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"colsweep/internal/config"
	"colsweep/internal/ui"
	"colsweep/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure a database connection interactively",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ui.ShowHeader("Connection Setup")

	conn := models.Connection{}
	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Connection name:", Default: "default"},
			Validate: survey.Required,
		},
		{
			Name: "driver",
			Prompt: &survey.Select{
				Message: "Database driver:",
				Options: []string{"sqlserver", "postgres", "mysql", "snowflake"},
			},
		},
	}
	if err := survey.Ask(questions, &conn); err != nil {
		return err
	}

	if conn.Driver == "snowflake" {
		if err := survey.AskOne(&survey.Input{Message: "Account:"}, &conn.Account, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		if err := survey.AskOne(&survey.Input{Message: "Warehouse:"}, &conn.Warehouse); err != nil {
			return err
		}
		if err := survey.AskOne(&survey.Input{Message: "Role:"}, &conn.Role); err != nil {
			return err
		}
	} else {
		if err := survey.AskOne(&survey.Input{Message: "Host:"}, &conn.Host, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if err := survey.AskOne(&survey.Input{Message: "Database:"}, &conn.Database, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	if err := survey.AskOne(&survey.Input{Message: "Schema (blank for driver default):"}, &conn.Schema); err != nil {
		return err
	}
	if err := survey.AskOne(&survey.Input{Message: "Username:"}, &conn.Username, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var password string
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password); err != nil {
		return err
	}

	useKeyring := true
	if err := survey.AskOne(&survey.Confirm{
		Message: "Store the password in the OS keyring instead of the config file?",
		Default: true,
	}, &useKeyring); err != nil {
		return err
	}

	if useKeyring {
		if err := config.StorePassword(conn.Name, password); err != nil {
			ui.ShowWarning(fmt.Sprintf("Keyring unavailable (%v); storing password in the config file", err))
			conn.Password = password
		}
	} else {
		conn.Password = password
	}

	// Replace an existing connection with the same name.
	replaced := false
	for i := range cfg.Connections {
		if cfg.Connections[i].Name == conn.Name {
			cfg.Connections[i] = conn
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Connections = append(cfg.Connections, conn)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	ui.ShowSuccess(fmt.Sprintf("Connection %q saved to %s", conn.Name, config.GetConfigFile()))
	return nil
}
