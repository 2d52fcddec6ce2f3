package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"missionboard/internal/engine"
	"missionboard/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List the mission board (use `mb board` to play)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMission, "Missions"))
			for _, m := range a.missions.Missions() {
				fmt.Fprintf(out, "- #%d %s [%s] %s %s\n",
					m.ID, m.Title,
					ui.DifficultyText(m.Difficulty),
					ui.Gold.Render(fmt.Sprintf("%d XP", engine.RewardXP(m))),
					ui.Muted.Render("posted "+ui.Ago(m.CreatedAt)),
				)
				fmt.Fprintf(out, "  %s\n", ui.Muted.Render(m.Description))
			}
			if _, ok := a.store.Current(); !ok {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render("Sign in to take on missions."))
			}
			return nil
		},
	}

	return cmd
}
