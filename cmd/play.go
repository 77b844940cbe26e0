package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the app straight into a quiz mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("mode")
		mode := quiz.Mode(name)
		if _, ok := quiz.LookupMode(mode); !ok {
			return fmt.Errorf("%w %q (choose from %s)", quiz.ErrUnknownMode, name, modeNames())
		}
		return runApp(cmd, mode)
	},
}

func modeNames() string {
	var names []string
	for _, m := range quiz.Modes() {
		names = append(names, string(m.Mode))
	}
	return strings.Join(names, ", ")
}

func init() {
	playCmd.Flags().StringP("mode", "m", string(quiz.ModeRecap), "Quiz mode to play")
}
