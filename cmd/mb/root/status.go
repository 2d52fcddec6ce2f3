package root

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"missionboard/internal/engine"
	"missionboard/internal/passport"
	"missionboard/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in player",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			p, ok := a.store.Current()
			if !ok {
				fmt.Fprintln(out, ui.Muted.Render("Not signed in. Run `mb login` or `mb register`."))
				return nil
			}

			nextReq := engine.XPRequiredForLevel(p.Level + 1)
			toNext := max(nextReq-p.XP, 0)

			fmt.Fprintln(out, ui.Heading(ui.IconUser, "Player Status"))
			fmt.Fprintln(out, ui.LabelValue("Name", displayNameOr(p)))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%s (next at %s, %d to go)", humanize.Comma(int64(p.XP)), humanize.Comma(int64(nextReq)), toNext)))
			fmt.Fprintln(out, ui.LevelBar(p.XP, 30))
			if p.AvatarURL != "" {
				fmt.Fprintln(out, ui.LabelValue("Avatar", p.AvatarURL))
			}
			if info, ok := passport.InspectToken(p.AccessToken, time.Now()); ok {
				switch {
				case info.Expired:
					fmt.Fprintln(out, ui.LabelValue("Session", ui.Warn.Render("expired "+humanize.Time(info.ExpiresAt))))
				case !info.ExpiresAt.IsZero():
					fmt.Fprintln(out, ui.LabelValue("Session", "expires "+humanize.Time(info.ExpiresAt)))
				}
			}
			fmt.Fprintln(out, ui.Muted.Render("Backend: "+a.cfg.APIBaseURL))
			return nil
		},
	}

	return cmd
}

func displayNameOr(p passport.Passport) string {
	if p.DisplayName == "" {
		return ui.Muted.Render("(not set)")
	}
	return p.DisplayName
}
