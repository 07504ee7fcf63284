package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "petd",
	Short: "Virtual pet backend",
	Long:  "petd keeps a virtual cat alive: stats that decay over time, care actions, a minigame, a cosmetics shop, and an optional chat companion.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(actCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(equipCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(minigameCmd)
}
