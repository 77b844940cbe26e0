package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/llm"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM requests made by facta generate",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: withEvents(func(cmd *cobra.Command, repo store.EventRepo, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		events, err := repo.QueryLLMEvents(background(cmd), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Purpose,
				truncate(e.Model, 28),
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				fmt.Sprintf("%dms", e.LatencyMs),
				status,
			})
		}
		printTable(out, []string{"ID", "When", "Purpose", "Model", "Tokens in/out", "Latency", "Status"}, rows)
		return nil
	}),
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its prompt and response",
	Args:  cobra.ExactArgs(1),
	RunE: withEvents(func(cmd *cobra.Command, repo store.EventRepo, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}
		e, err := repo.GetLLMEvent(background(cmd), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no request with ID %d", id)
		}
		writeEvent(cmd.OutOrStdout(), e)
		return nil
	}),
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: withEvents(func(cmd *cobra.Command, repo store.EventRepo, _ []string) error {
		ctx := background(cmd)
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		var rows [][]string
		for _, u := range byPurpose {
			rows = append(rows, []string{
				u.Purpose, strconv.Itoa(u.Calls),
				strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
				fmt.Sprintf("%dms", u.AvgLatencyMs),
			})
		}
		printTable(out, []string{"Purpose", "Calls", "In", "Out", "Avg latency"}, rows)

		rows = rows[:0]
		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if price := llm.LookupCost(u.Model); price != nil {
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = usd(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			rows = append(rows, []string{truncate(u.Model, 32), strconv.Itoa(u.Calls), cost})
		}
		fmt.Fprintln(out)
		printTable(out, []string{"Model", "Calls", "Est. cost"}, rows)

		fmt.Fprintf(out, "\nTotal: %s", usd(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, " (no price for %s)", strings.Join(unpriced, ", "))
		}
		fmt.Fprintln(out)
		return nil
	}),
}

func writeEvent(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "#%d  %s  %s/%s  purpose=%s\n", e.ID,
		e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Provider, e.Model, e.Purpose)
	fmt.Fprintf(w, "tokens %d in, %d out  latency %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
	if !e.Success {
		fmt.Fprintf(w, "error: %s\n", e.ErrorMessage)
	}
	for _, part := range []struct{ label, body string }{
		{"request", e.RequestBody},
		{"response", e.ResponseBody},
	} {
		body := part.body
		if body == "" {
			body = "(empty)"
		}
		fmt.Fprintf(w, "\n=== %s ===\n%s\n", part.label, strings.TrimRight(body, "\n"))
	}
}

// withEvents opens the SQLite request log for fn. It does not build the
// full runtime, so it works whatever the progress backend.
func withEvents(fn func(*cobra.Command, store.EventRepo, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		path, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		db, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()
		return fn(cmd, db.EventRepo(), args)
	}
}

func usd(v float64) string {
	if v > 0 && v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only requests with this purpose, e.g. pack-gen")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
