// Package main provides the entry point for the Alchemorsel recipe
// assistant API server
package main

import (
	"os"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "api",
		Short:        "Run the recipe assistant API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(container.New(configPath))
			if err := app.Err(); err != nil {
				return err
			}

			// blocks until SIGINT or SIGTERM, then stops within the stop timeout
			app.Run()
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("ALCHEMORSEL_CONFIG"), "path to the configuration file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
