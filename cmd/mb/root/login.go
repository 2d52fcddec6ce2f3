package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"missionboard/internal/form"
	"missionboard/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var f form.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the mission backend",
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

			if err := a.store.Login(ctx, f.Credentials()); err != nil {
				return userError(err)
			}
			p, _ := a.store.Current()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconKey, "Signed in"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.PlayerLine(p.DisplayName, p.XP, p.Level))
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "Password")
	return cmd
}
