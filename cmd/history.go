package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		history := rt.progress.LoadQuizHistory(background(cmd))
		if len(history) == 0 {
			fmt.Println("No quizzes played yet.")
			return nil
		}

		sum := quiz.Summarize(history)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d quizzes, average %d%%, best streak %d\n\n", sum.Count, sum.AvgPercent, sum.BestStreak)

		var rows [][]string
		// Most recent first.
		for i := len(history) - 1; i >= 0 && (limit <= 0 || len(history)-i <= limit); i-- {
			r := history[i]
			title := string(r.Mode)
			if cfg, ok := quiz.LookupMode(r.Mode); ok {
				title = cfg.Title
			}
			rows = append(rows, []string{
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(title, 20),
				fmt.Sprintf("%d/%d", r.Score, r.Total),
				fmt.Sprintf("%d%%", r.Percent()),
				strconv.Itoa(r.BestStreak),
			})
		}
		printTable(out, []string{"Played", "Mode", "Score", "%", "Streak"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show (0 for all)")
}
