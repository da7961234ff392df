package main

import (
	"fmt"
	"io"
	"strings"

	"creativemastery/internal/model"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

const barWidth = 20

func stateColor(st model.State) func(a ...interface{}) string {
	switch st {
	case model.StateLeft:
		return yellow
	case model.StateRight:
		return cyan
	default:
		return green
	}
}

func bar(pct int) string {
	filled := pct * barWidth / 100
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

func renderResults(w io.Writer, res model.Results) {
	fmt.Fprintf(w, "%s %s\n", bold(res.Profile.Name), gray("["+string(res.MatchKind)+"]"))
	if res.Profile.Description != "" {
		fmt.Fprintf(w, "%s\n", res.Profile.Description)
	}
	fmt.Fprintln(w)

	for _, d := range res.Dimensions {
		paint := stateColor(d.State)
		fmt.Fprintf(w, "%-22s %s %3d%%  %.2f  %s\n", d.Title, bar(d.Percentage), d.Percentage, d.Score, paint(d.StateName))
	}
}

func renderInsights(w io.Writer, sel model.MasterySelections, b *model.InsightsBundle) {
	fmt.Fprintf(w, "\n%s %s / %s / %s\n", bold("Mastery path:"), sel.Ambition, sel.CreativeState, sel.MasteryMetric)
	fmt.Fprintf(w, "%s\n", b.SummaryInsights.AmbitionInsight)

	focus := make([]string, 0, len(b.SummaryInsights.FocusDimensions))
	for _, d := range b.SummaryInsights.FocusDimensions {
		focus = append(focus, string(d))
	}
	if len(focus) == 0 {
		focus = append(focus, "none")
	}
	fmt.Fprintf(w, "%s %s %s\n\n", bold("Focus:"), strings.Join(focus, ", "), gray("(overall "+string(b.SummaryInsights.OverallFocus)+")"))

	for _, d := range model.Dimensions {
		di, ok := b.DimensionInsights[d]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-20s %.2f -> %.2f  %-10s %s\n", d, di.CurrentScore, di.AdjustedTarget, priorityLabel(di.Priority), di.Recommendation)
	}

	if len(b.SynergyInsights) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Synergies"))
		for _, s := range b.SynergyInsights {
			fmt.Fprintf(w, "  %s -> %s %s %s\n", s.From, s.To, gray(fmt.Sprintf("(%.2f)", s.Relevance)), s.Insight)
		}
	}

	fmt.Fprintf(w, "\n%s\n", bold("Practices"))
	for i, p := range b.PersonalizedPractices {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, p)
	}
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return red(string(p))
	case model.PriorityModerate:
		return yellow(string(p))
	default:
		return gray(string(p))
	}
}
