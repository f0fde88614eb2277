package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"synthevix/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sx",
	Short:         "Synthevix: gamified quests, notes, moods and coding streaks",
	Long:          "Synthevix is a local command center: quests with XP, levels, streaks and achievements, plus a small knowledge base, mood journal and coding log.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newCompleteCmd(),
		newFailCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newHistoryCmd(),
		newDailyCmd(),
		newBoardCmd(),
		newNoteCmd(),
		newMoodCmd(),
		newForgeCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newConfigCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
