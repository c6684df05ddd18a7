package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check API reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		if err := client.Ping(cmd.Context()); err != nil {
			return err
		}
		ui.Success("API reachable at %s", viper.GetString("api.base_url"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
