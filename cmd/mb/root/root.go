package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"missionboard/internal/ui"
)

const Version = "0.1.0"

var (
	apiURL  string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:           "mb",
	Short:         "Missionboard: take on missions, earn XP, level up",
	Long:          "Missionboard is a terminal client for the mission backend: sign in, join and complete missions, and manage your profile.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (overrides MB_API_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the session cache and logs (overrides MB_DATA_DIR)")

	rootCmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newProfileCmd(),
		newAvatarCmd(),
		newMissionsCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorLine(err.Error()))
		os.Exit(1)
	}
}
