package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobscout/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to the --config path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if err := config.WriteExample(cfgPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s: fill in the webhook URL and adjust the profile\n", cfgPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
