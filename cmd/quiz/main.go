package main

import (
	"fmt"
	"os"

	"creativemastery/internal/catalog"
	"creativemastery/internal/engine"
	"creativemastery/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Score creative mastery quiz answers offline",
		Long: `quiz runs the creative mastery engine against local answer files.

Examples:
  quiz questions --dimension beliefMindset
  quiz sample --pattern clarityVision_left --out answers.yaml
  quiz score --answers answers.yaml --ambition Precision --creative-state Focus --metric Breakthroughs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newQuestionsCmd(), newScoreCmd(), newSampleCmd())
	return cmd
}

// newQuizService builds the in-process service the subcommands share
func newQuizService() (*service.QuizService, error) {
	return service.NewQuizService(engine.New(catalog.Default()), 16, nil, zap.NewNop())
}
