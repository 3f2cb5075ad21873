package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"colsweep/internal/config"
	"colsweep/internal/datasource"
	"colsweep/internal/ui"
)

var tablesSchema string

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables visible in a schema",
	RunE:  runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.Flags().StringVarP(&connectionName, "connection", "c", "", "Named connection from the config file")
	tablesCmd.Flags().StringVarP(&tablesSchema, "schema", "s", "", "Schema to list (driver default if omitted)")
}

func runTables(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	configs, err := resolveConnections(cfg)
	if err != nil {
		return err
	}

	svc, err := datasource.NewChain(configs...).Connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	tables, err := svc.ListTables(ctx, tablesSchema)
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		ui.ShowWarning("No tables found")
		return nil
	}

	t := ui.NewTable()
	t.AddHeader("#", "Table")
	for i, name := range tables {
		t.AddRow(fmt.Sprintf("%d", i+1), name)
	}
	t.Render()
	return nil
}
