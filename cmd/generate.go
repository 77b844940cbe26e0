package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/llm"
	"github.com/sjostromVilgot/Facta-sub000/internal/packgen"
	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a content pack with an LLM",
	Long: `Ask the configured LLM provider for new facts and quiz questions on a
topic and write them as a pack into content.pack_dir (or --out).

Existing titles and prompts are sent along so the model avoids repeats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		category, _ := cmd.Flags().GetString("category")
		facts, _ := cmd.Flags().GetInt("facts")
		questions, _ := cmd.Flags().GetInt("questions")
		out, _ := cmd.Flags().GetString("out")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if out == "" {
			out = rt.cfg.Content.PackDir
		}
		if out == "" {
			dir, err := store.DataDir()
			if err != nil {
				return err
			}
			out = filepath.Join(dir, "packs")
		}

		db, err := rt.openDB(cmd)
		if err != nil {
			return err
		}

		ctx := background(cmd)
		provider, err := llm.NewProvider(ctx, rt.cfg.LLMConfig(), db.EventRepo(), rt.log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		var existing []string
		for _, f := range rt.content.Facts() {
			existing = append(existing, f.Title)
		}

		gen := packgen.New(provider, packgen.DefaultConfig())
		fmt.Printf("Generating %d facts and %d questions about %q...\n", facts, questions, topic)
		pack, err := gen.Generate(ctx, packgen.GenerateInput{
			Topic:     topic,
			Category:  category,
			Facts:     facts,
			Questions: questions,
			Kinds: []quiz.Kind{
				quiz.KindMultipleChoice,
				quiz.KindTrueFalse,
				quiz.KindImageChoice,
				quiz.KindFillBlank,
			},
			Existing: existing,
		})
		if err != nil {
			var verr *packgen.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("generated pack failed validation: %w", err)
			}
			return err
		}

		path, err := packgen.WritePack(out, pack)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d facts and %d questions to %s\n", len(pack.Facts), len(pack.Questions), path)
		if rt.cfg.Content.PackDir == "" {
			fmt.Printf("Set content.pack_dir (or FACTA_CONTENT_PACK_DIR) to %s to load it.\n", out)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Topic to write about (required)")
	generateCmd.Flags().StringP("category", "c", "", "Category label for the new content")
	generateCmd.Flags().Int("facts", 5, "Number of facts")
	generateCmd.Flags().Int("questions", 8, "Number of quiz questions")
	generateCmd.Flags().StringP("out", "o", "", "Directory to write the pack to")
	_ = generateCmd.MarkFlagRequired("topic")
}
