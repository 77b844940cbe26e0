package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
)

// version is stamped with -ldflags "-X .../cmd.version=v1.2.3".
var version = ""

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the content pack format it reads",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("facta %s\ncontent packs %s.x\n", buildVersion(), content.SupportedMajor)
	},
}
