package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"missionboard/internal/ui"
)

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, ok := a.store.Current(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Not signed in."))
				return nil
			}
			if err := a.store.Logout(ctx); err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Signed out."))
			return nil
		},
	}

	return cmd
}
