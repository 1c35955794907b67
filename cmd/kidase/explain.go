package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/YaredDejene/kidase-presentation/internal/app"
	"github.com/YaredDejene/kidase-presentation/internal/service/render"
)

func explainCmd(configPath *string) *cobra.Command {
	var (
		ctxFlags     contextFlags
		presentation string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show the rule candidates and winner of every dynamic slide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if presentation == "" {
				return errors.New("--presentation is required")
			}
			rctx, err := ctxFlags.build(time.Now())
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.Render.Explain(cmd.Context(), render.RenderInput{PresentationID: presentation, Context: rctx})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), outPath, out)
		},
	}

	ctxFlags.register(cmd)
	cmd.Flags().StringVarP(&presentation, "presentation", "p", "", "presentation id")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to this file instead of stdout")
	return cmd
}
