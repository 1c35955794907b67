package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/YaredDejene/kidase-presentation/internal/calendarctx"
	"github.com/YaredDejene/kidase-presentation/internal/rules"
)

// contextFlags are the evaluation context options shared by render and
// explain.
type contextFlags struct {
	date        string
	observance  string
	season      string
	contextFile string
	set         []string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "calendar date (YYYY-MM-DD); defaults to today")
	cmd.Flags().StringVar(&f.observance, "observance", "", "observance name, e.g. meskel")
	cmd.Flags().StringVar(&f.season, "season", "", "liturgical season, e.g. tsige")
	cmd.Flags().StringVar(&f.contextFile, "context-file", "", "YAML file of extra context fields")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "context override key=value (repeatable, wins over everything)")
}

// build assembles the context: calendar flags, then the context file, then
// --set overrides.
func (f *contextFlags) build(now time.Time) (rules.Context, error) {
	facts := calendarctx.Facts{Observance: f.observance, Season: f.season}

	if f.date == "" {
		facts.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		d, err := time.Parse(rules.DateLayout, f.date)
		if err != nil {
			return rules.Context{}, fmt.Errorf("--date: %w", err)
		}
		facts.Date = d
	}

	var layers []map[string]any
	if f.contextFile != "" {
		file, err := calendarctx.LoadFile(f.contextFile)
		if err != nil {
			return rules.Context{}, err
		}
		layers = append(layers, file)
	}

	overrides, err := calendarctx.ParseOverrides(f.set)
	if err != nil {
		return rules.Context{}, err
	}
	layers = append(layers, overrides)

	return calendarctx.Build(facts, layers...), nil
}
