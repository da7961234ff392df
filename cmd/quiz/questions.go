package main

import (
	"fmt"

	"creativemastery/internal/model"

	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	var dimension string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newQuizService()
			if err != nil {
				return err
			}
			dim := model.DimensionID(dimension)
			if dim != "" && !dim.IsKnown() {
				return fmt.Errorf("unknown dimension %q", dimension)
			}

			out := cmd.OutOrStdout()
			cat := svc.Catalog()
			for _, info := range cat.Dimensions() {
				if dim != "" && info.ID != dim {
					continue
				}
				fmt.Fprintf(out, "%s %s\n", bold(info.Title), gray("("+string(info.ID)+")"))
				for _, q := range cat.Questions() {
					if q.Dimension != info.ID {
						continue
					}
					fmt.Fprintf(out, "  %-4s %s\n", cyan(q.ID), q.Prompt)
					fmt.Fprintf(out, "       %s  <->  %s\n", gray("0: "+q.LeftLabel), gray("100: "+q.RightLabel))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dimension, "dimension", "d", "", "Only list questions of this dimension")
	return cmd
}
