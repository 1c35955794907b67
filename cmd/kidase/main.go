// Command kidase renders Kidase presentations from the presentation database
// for a given liturgical context.
//
// Commands:
//
//	kidase migrate                     apply schema migrations
//	kidase render  [--presentation id] render presentations to JSON
//	kidase explain --presentation id   show how dynamic slides pick their rule
//	kidase version                     print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/YaredDejene/kidase-presentation/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "kidase",
		Short:         "Kidase presentation rule resolution and content assembly",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (YAML); defaults to CONFIG_PATH or ./config.yaml")

	cmd.AddCommand(
		migrateCmd(&configPath),
		renderCmd(&configPath),
		explainCmd(&configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "kidase", app.BuildVersion())
			},
		},
	)
	return cmd
}
