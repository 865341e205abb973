package main

import (
	"fmt"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/spf13/cobra"
)

// outlineFile is the YAML layout read by the calendar command.
type outlineFile struct {
	Strategy planner.Matrix `yaml:"strategy"`
	Weeks    []models.Week  `yaml:"weeks"`
}

var calendarFlags struct {
	outline  string
	start    string
	prefs    string
	fallback bool
	asJSON   bool
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Slot an outline into a five week calendar",
	Example: `  planner calendar --outline outline.yaml --start 2024-06-03 --fallback
  planner calendar --outline outline.yaml --start 2024-06-03 --prefs prefs.yaml`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarFlags.outline, "outline", "", "YAML file with strategy and weeks")
	calendarCmd.Flags().StringVar(&calendarFlags.start, "start", "", "start date, 2006-01-02 (default today)")
	calendarCmd.Flags().StringVar(&calendarFlags.prefs, "prefs", "", "YAML file with frequency, channels and posting_time")
	calendarCmd.Flags().BoolVar(&calendarFlags.fallback, "fallback", false, "use the deterministic slotter without calling the model")
	calendarCmd.Flags().BoolVar(&calendarFlags.asJSON, "json", false, "print the slots as JSON instead of the HTML table")
	_ = calendarCmd.MarkFlagRequired("outline")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var outline outlineFile
	if err := readYAML(calendarFlags.outline, &outline); err != nil {
		return err
	}
	if err := models.ValidateWeeks(outline.Weeks); err != nil {
		return err
	}

	start := time.Now().UTC()
	if calendarFlags.start != "" {
		t, err := time.Parse(time.DateOnly, calendarFlags.start)
		if err != nil {
			return fmt.Errorf("--start must look like 2006-01-02: %w", err)
		}
		start = t
	}

	in := planner.CalendarInput{
		Weeks:    outline.Weeks,
		Start:    start,
		Strategy: outline.Strategy,
	}
	if calendarFlags.prefs != "" {
		if err := readYAML(calendarFlags.prefs, &in.Prefs); err != nil {
			return err
		}
	}

	var plan *planner.CalendarPlan
	if calendarFlags.fallback {
		plan = planner.FallbackCalendar(in)
	} else {
		p, err := newPlanner(ctx)
		if err != nil {
			return err
		}
		plan, err = p.BuildCalendar(ctx, planner.Caller{UserID: userID}, in)
		if err != nil {
			return err
		}
	}

	if calendarFlags.asJSON {
		return writeJSON(cmd.OutOrStdout(), plan.Slots)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), plan.HTML)
	return err
}
