package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobscout/internal/alert"
)

var testAlertCmd = &cobra.Command{
	Use:   "test-alert",
	Short: "Send a status message to the configured webhook to verify it works",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadValidatedConfig()
		if err != nil {
			return err
		}

		dispatcher, err := alert.New(alert.Config{
			WebhookURL: cfg.Alert.WebhookURL,
			Username:   cfg.Alert.Username,
			AvatarURL:  cfg.Alert.AvatarURL,
			Spacing:    time.Duration(cfg.Alert.SpacingSeconds) * time.Second,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		if err := dispatcher.TestMessage(ctx); err != nil {
			return fmt.Errorf("webhook test failed: %w", err)
		}
		fmt.Println("test message sent")
		return nil
	},
}
