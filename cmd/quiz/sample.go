package main

import (
	"fmt"

	"creativemastery/internal/model"

	"github.com/spf13/cobra"
)

// Raw slider values that land squarely in each state
var sampleValues = map[model.State]int{
	model.StateLeft:     model.SliderMin,
	model.StateBalanced: 50,
	model.StateRight:    model.SliderMax,
}

func newSampleCmd() *cobra.Command {
	var pattern, out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write an answer file that realizes a profile pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePattern(pattern)
			if err != nil {
				return err
			}
			svc, err := newQuizService()
			if err != nil {
				return err
			}

			f := &AnswerFile{Pattern: pattern, Answers: sampleAnswers(svc.Catalog().Questions(), p)}
			if err := writeAnswerFile(out, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d answers for %s to %s\n", green("wrote"), len(f.Answers), bold(pattern), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "pattern", "p", model.ProfileKeyBalanced, "Profile key to realize, e.g. beliefMindset_left")
	cmd.Flags().StringVarP(&out, "out", "o", "answers.yaml", "Output file")
	return cmd
}

func sampleAnswers(questions []model.Question, p model.Pattern) model.Answers {
	answers := make(model.Answers, len(questions))
	for _, q := range questions {
		answers[q.ID] = sampleValues[p.StateOf(q.Dimension)]
	}
	return answers
}
