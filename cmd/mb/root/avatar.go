package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"missionboard/internal/passport"
	"missionboard/internal/ui"
)

func newAvatarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar <image>",
		Short: "Upload a new avatar image (max 5MB)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("image path is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := passport.LoadAvatar(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.store.UploadAvatar(ctx, img); err != nil {
				return userError(err)
			}
			p, _ := a.store.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n", ui.IconImage, ui.Good.Render("Avatar updated"), img.MIME(), img.Size())
			if p.AvatarURL != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("URL", p.AvatarURL))
			}
			return nil
		},
	}

	return cmd
}
