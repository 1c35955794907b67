package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/YaredDejene/kidase-presentation/internal/app"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/service/render"
)

// renderOutput is one presentation in the render command's JSON document.
type renderOutput struct {
	PresentationID string               `json:"presentationId"`
	Result         *domain.RenderResult `json:"result,omitempty"`
	Error          string               `json:"error,omitempty"`
}

func renderCmd(configPath *string) *cobra.Command {
	var (
		ctxFlags      contextFlags
		presentations []string
		outPath       string
		metricsPath   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render presentations for a liturgical context",
		Long: `Render resolves every dynamic slide against the given context and writes
the rendered presentations as JSON. Without --presentation every active
presentation is rendered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rctx, err := ctxFlags.build(time.Now())
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			results, renderErr := a.Render.RenderMany(cmd.Context(), render.BatchInput{
				PresentationIDs: presentations,
				Context:         rctx,
			})
			if results == nil && renderErr != nil {
				return renderErr
			}

			failed := 0
			out := make([]renderOutput, 0, len(results))
			for _, r := range results {
				o := renderOutput{PresentationID: r.PresentationID, Result: r.Result}
				if r.Err != nil {
					o.Error = r.Err.Error()
					failed++
				}
				out = append(out, o)
			}

			if err := writeJSON(cmd.OutOrStdout(), outPath, out); err != nil {
				return err
			}
			if metricsPath != "" {
				if err := prometheus.WriteToTextfile(metricsPath, a.Registry); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			if renderErr != nil {
				return renderErr
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d presentations failed", failed, len(results))
			}
			return nil
		},
	}

	ctxFlags.register(cmd)
	cmd.Flags().StringArrayVarP(&presentations, "presentation", "p", nil, "presentation id (repeatable); defaults to every active presentation")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().StringVar(&metricsPath, "metrics-out", "", "write render metrics in Prometheus text format to this file")
	return cmd
}

// writeJSON writes v indented to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) (err error) {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
