package main

import (
	"encoding/json"
	"errors"

	"creativemastery/internal/model"
	"creativemastery/internal/service"

	"github.com/spf13/cobra"
)

// scoreOutput is the --json form of the score command
type scoreOutput struct {
	Results  model.Results         `json:"results"`
	Insights *model.InsightsBundle `json:"insights,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var (
		answersPath   string
		ambition      string
		creativeState string
		metric        string
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answer file and optionally generate mastery insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			if answersPath == "" {
				return errors.New("--answers is required")
			}
			f, err := readAnswerFile(answersPath)
			if err != nil {
				return err
			}
			svc, err := newQuizService()
			if err != nil {
				return err
			}

			res, err := svc.ComputeResults(f.Answers)
			if err != nil {
				return err
			}
			out := scoreOutput{Results: res}

			sel := model.MasterySelections{}
			if f.Mastery != nil {
				sel = *f.Mastery
			}
			if ambition != "" {
				sel.Ambition = model.Ambition(ambition)
			}
			if creativeState != "" {
				sel.CreativeState = model.CreativeState(creativeState)
			}
			if metric != "" {
				sel.MasteryMetric = model.MasteryMetric(metric)
			}
			if sel != (model.MasterySelections{}) {
				if err := svc.ValidateSelections(sel); err != nil {
					return err
				}
				out.Insights = svc.GenerateInsights(service.InsightsRequest{
					DimensionScores: res.DimensionScores,
					DimensionStates: res.DimensionStates,
					Selections:      sel,
				})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			renderResults(cmd.OutOrStdout(), res)
			if out.Insights != nil {
				renderInsights(cmd.OutOrStdout(), sel, out.Insights)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "YAML answer file")
	cmd.Flags().StringVar(&ambition, "ambition", "", "Ambition selection")
	cmd.Flags().StringVar(&creativeState, "creative-state", "", "Creative state selection")
	cmd.Flags().StringVar(&metric, "metric", "", "Mastery metric selection")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
