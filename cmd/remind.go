package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sjostromVilgot/Facta-sub000/internal/notify"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder scheduler in the foreground",
	Long: `Run the reminder scheduler in the foreground.

Reminders configured in Settings are printed to the terminal when they are
due. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		loc, err := rt.cfg.Location()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scheduler := notify.NewScheduler(&notify.WriterNotifier{W: os.Stdout}, rt.log, loc)
		if err := scheduler.Apply(rt.progress.LoadUserSettings(ctx)); err != nil {
			return fmt.Errorf("schedule reminders: %w", err)
		}

		now := time.Now().In(loc)
		scheduled := false
		for _, kind := range []notify.Kind{notify.KindDaily, notify.KindQuiz} {
			if next, ok := scheduler.Next(kind, now); ok {
				fmt.Printf("Next %s reminder: %s\n", kind, next.Format("Mon 2 Jan 15:04"))
				scheduled = true
			}
		}
		if !scheduled {
			fmt.Println("No reminders enabled. Turn them on in Settings.")
			return nil
		}

		scheduler.Start()
		<-ctx.Done()
		scheduler.Stop()
		return nil
	},
}
