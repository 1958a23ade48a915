package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linkshield/internal/analysis"
	"linkshield/pkg/domain"
)

// checkCommand constructs the 'check' subcommand that scores a URL offline
// using the fallback heuristics, without touching the database, the
// classifier or the network. Useful for eyeballing the rule tables.
func checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Scores a URL offline using fallback heuristics",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			URL := args[0]
			rules := analysis.DefaultRules()

			structural := rules.Analyzer.Analyze(URL)
			result := rules.Fallback.Score(URL, structural)

			verdictColor := color.New(color.FgGreen, color.Bold)
			switch result.Verdict {
			case domain.VerdictSuspicious:
				verdictColor = color.New(color.FgYellow, color.Bold)
			case domain.VerdictMalicious:
				verdictColor = color.New(color.FgRed, color.Bold)
			case domain.VerdictBenign:
			}

			fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(URL), verdictColor.Sprint(result.Verdict))
			fmt.Printf("risk score: %d/100  risk level: %s  confidence: %.2f\n",
				result.RiskScore, result.RiskLevel, result.Confidence)
			for _, observation := range result.Observations {
				fmt.Printf("  - %s\n", observation)
			}
		},
	}

	return cmd
}
