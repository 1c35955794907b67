package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/YaredDejene/kidase-presentation/internal/app"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			version, err := a.DB.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			a.Log.Info("migrations applied", slog.Int64("version", version))
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
}
