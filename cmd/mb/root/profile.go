package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"missionboard/internal/form"
	"missionboard/internal/ui"
)

func newProfileCmd() *cobra.Command {
	var f form.ProfileForm

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change your display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := form.Validate(f); errs != nil {
				return errors.New(errs.Error())
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.store.UpdateProfile(ctx, f.DisplayName); err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Display name set to "+f.DisplayName))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.DisplayName, "name", "", "New display name")
	return cmd
}
