package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"missionboard/internal/form"
	"missionboard/internal/ui"
)

func newRegisterCmd() *cobra.Command {
	var f form.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
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

			if err := a.store.Register(ctx, f.Registration()); err != nil {
				return userError(err)
			}
			p, _ := a.store.Current()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Welcome aboard"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.PlayerLine(p.DisplayName, p.XP, p.Level))
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "Password")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm", "", "Repeat the password")
	cmd.Flags().StringVar(&f.DisplayName, "name", "", "Display name")
	return cmd
}
