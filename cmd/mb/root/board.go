package root

import (
	"context"

	"github.com/spf13/cobra"

	"missionboard/internal/nav"
	"missionboard/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the mission board TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n := nav.NewNavigator(a.store, a.log)
			defer n.Close()

			return tui.RunBoard(ctx, tui.Deps{
				Store:    a.store,
				Missions: a.missions,
				Nav:      n,
				Recorder: a.metrics,
				Log:      a.log,
			}, cmd.OutOrStdout())
		},
	}

	return cmd
}
