package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/progression"
	"github.com/sjostromVilgot/Facta-sub000/internal/streak"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, streak and badges",
	Long: `Show level, streak and badges.

Like opening the app, this counts as today's activity and claims any
daily reward that is due.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := background(cmd)
		agg := progression.NewAggregator(rt.progress, rt.log, nil)
		p := agg.Load(ctx)
		st := p.Stats

		name := rt.progress.LoadUserSettings(ctx).Username
		if name == "" {
			name = "Fact fan"
		}

		fmt.Println(name)
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("Level:            %d (%d XP, %d to next)\n", st.Level, st.TotalXP, st.XPToNext)
		fmt.Printf("Streak:           %d days (longest %d, next milestone %d)\n",
			st.StreakDays, st.LongestStreak, streak.NextMilestone(st.StreakDays))
		fmt.Printf("Facts read:       %d\n", st.TotalFactsRead)
		fmt.Printf("Quizzes:          %d (avg %d%%, best streak %d)\n", st.TotalQuizzes, st.AvgQuizScore, st.BestQuizStreak)
		fmt.Printf("Favourites:       %d\n", st.FavoritesCount)
		if st.FavoriteCategory != "" {
			fmt.Printf("Top category:     %s\n", st.FavoriteCategory)
		}
		if !st.JoinDate.IsZero() {
			fmt.Printf("Joined:           %s\n", st.JoinDate.Local().Format("2 Jan 2006"))
		}

		switch {
		case st.HasLeveledUp:
			fmt.Printf("\nLevel up! You reached level %d.\n", st.Level)
		case p.MilestoneBonus > 0:
			fmt.Printf("\n%d-day streak! +%d XP\n", p.Streak.CurrentStreak, p.MilestoneBonus)
		case p.DailyReward > 0:
			fmt.Printf("\nDaily bonus +%d XP\n", p.DailyReward)
		}

		fmt.Printf("\nBadges (%d/%d)\n", st.BadgesUnlocked, len(p.Badges))
		fmt.Println(strings.Repeat("─", 40))
		for _, b := range p.Badges {
			mark := "🔒"
			if b.Unlocked {
				mark = b.Icon
			}
			fmt.Printf("%s  %-20s %s\n", mark, b.Name, b.Description)
		}
		return nil
	},
}
