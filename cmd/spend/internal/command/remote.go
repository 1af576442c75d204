package command

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/money"
	"github.com/student-spending/spendboard/internal/stats"
)

const barWidth = 30

func newClassifyCmd(a *app) *cobra.Command {
	var useLLM bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Categorize uploaded transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, token, err := a.client()
			if err != nil {
				return err
			}

			svc := stats.NewService(func(string) stats.Backend { return client }, a.cfg.Stats.CacheTTL)

			result, err := svc.Classify(cmd.Context(), token, useLLM)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "classified %d transactions, %d need review\n", result.TotalClassified, result.NeedsReviewCount)

			for _, category := range slices.Sorted(maps.Keys(result.ByCategory)) {
				fmt.Fprintf(out, "  %-16s %d\n", category, result.ByCategory[category])
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&useLLM, "llm", false, "let the language model categorize rows the rules cannot")

	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var start, end, rng string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show spending by category for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := stats.DefaultQuery(a.now())

			if start != "" {
				q.Start = start
			}

			if end != "" {
				q.End = end
			}

			if rng != "" {
				q.Range = backend.Range(rng)
			}

			if err := q.Validate(); err != nil {
				return err
			}

			client, token, err := a.client()
			if err != nil {
				return err
			}

			svc := stats.NewService(func(string) stats.Backend { return client }, a.cfg.Stats.CacheTTL)

			result, err := svc.Aggregate(cmd.Context(), token, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s to %s (%s)\n", q.Start, q.End, q.Range)
			fmt.Fprintf(out, "total: %s\n\n", money.KRW(result.TotalAmount))

			for _, bar := range stats.Bars(result.ByCategory, barWidth) {
				fmt.Fprintf(out, "%-16s %-*s %s (%.0f%%)\n",
					bar.Category, barWidth, strings.Repeat("█", bar.Width), money.KRW(bar.Amount), bar.Share*100)
			}

			if len(result.TopMerchants) > 0 {
				fmt.Fprintln(out, "\ntop merchants:")

				for _, m := range result.TopMerchants {
					fmt.Fprintf(out, "  %-24s %s\n", m.Merchant, money.KRW(m.Amount))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD (default 30 days ago)")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&rng, "range", "", "bucket size: day, week or month (default month)")

	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the spending service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := a.client()
			if err != nil {
				return err
			}

			status, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", a.cfg.API.URL, status.Status, status.Service)

			return nil
		},
	}
}
