package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jobscout/internal/config"
	"jobscout/internal/secrets"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage credentials stored in the OS keychain",
}

var secretSetCmd = &cobra.Command{
	Use:   "set-imap-password",
	Short: "Store the IMAP password for the email source",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		// plain Load: storing a password shouldn't require a complete config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		account := secrets.IMAPAccount(cfg.Sources.Email.Username, cfg.Sources.Email.IMAPHost)

		fmt.Printf("password for %s: ", account)
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if err := secrets.SetIMAPPassword(account, string(pw)); err != nil {
			return err
		}
		fmt.Println("stored")
		return nil
	},
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete-imap-password",
	Short: "Remove the stored IMAP password",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		account := secrets.IMAPAccount(cfg.Sources.Email.Username, cfg.Sources.Email.IMAPHost)
		if err := secrets.DeleteIMAPPassword(account); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	secretCmd.AddCommand(secretSetCmd, secretDeleteCmd)
}
