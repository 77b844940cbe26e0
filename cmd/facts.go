package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Print facts from the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, _ := cmd.Flags().GetBool("daily")
		category, _ := cmd.Flags().GetString("category")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if daily {
			f := rt.content.DailyFact(time.Now())
			if f.ID == "" {
				fmt.Println("No facts available.")
				return nil
			}
			printFact(f)
			return nil
		}

		var n int
		for _, f := range rt.content.Facts() {
			if category != "" && !strings.EqualFold(f.Category, category) {
				continue
			}
			printFact(f)
			fmt.Println()
			n++
		}
		if n == 0 {
			fmt.Printf("No facts found. Categories: %s\n", strings.Join(rt.content.Categories(), ", "))
		}
		return nil
	},
}

func printFact(f content.Fact) {
	fmt.Printf("%s %s  [%s]\n", f.Emoji, f.Title, f.Category)
	fmt.Println(f.Body)
	if f.Source != "" {
		fmt.Println("Source:", f.Source)
	}
}

func init() {
	factsCmd.Flags().Bool("daily", false, "Print only today's fact")
	factsCmd.Flags().StringP("category", "c", "", "Only facts in this category")
}
