package main

import (
	"errors"
	"fmt"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/spf13/cobra"
)

var strategyFlags struct {
	business    string
	feedback    string
	competitors string
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Generate a 3x3 audience, objective and message matrix",
	Example: `  planner strategy --business "Neighbourhood yoga studio"
  planner strategy --business "Coffee roaster" --competitors competitors.yaml`,
	RunE: runStrategy,
}

func init() {
	strategyCmd.Flags().StringVar(&strategyFlags.business, "business", "", "business description")
	strategyCmd.Flags().StringVar(&strategyFlags.feedback, "feedback", "", "feedback on a previous matrix")
	strategyCmd.Flags().StringVar(&strategyFlags.competitors, "competitors", "", "YAML file with a list of competitor insights")
	_ = strategyCmd.MarkFlagRequired("business")
}

func runStrategy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	in := planner.StrategyInput{
		BusinessDescription: strategyFlags.business,
		Feedback:            strategyFlags.feedback,
	}
	if strategyFlags.competitors != "" {
		var competitors []models.CompetitorInsight
		if err := readYAML(strategyFlags.competitors, &competitors); err != nil {
			return err
		}
		in.Competitors = competitors
	}

	p, err := newPlanner(ctx)
	if err != nil {
		return err
	}

	result, err := p.GenerateStrategy(ctx, planner.Caller{UserID: userID}, in)
	if err != nil {
		var failure *planner.StrategyFailure
		if errors.As(err, &failure) {
			for _, a := range failure.Attempts {
				fmt.Fprintln(cmd.ErrOrStderr(), a)
			}
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
