package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jobscout/internal/config"
	"jobscout/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many postings have been seen, total and per source",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}

		db, err := store.Open(filepath.Join(cfg.App.DataDir, "jobs.db"))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()

		st, err := store.New(db)
		if err != nil {
			return fmt.Errorf("init store: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		stats, err := st.Stats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("seen postings: %d\n", stats.Total)
		for src, n := range stats.BySource {
			fmt.Printf("  %-10s %d\n", src, n)
		}

		recent, err := st.All(ctx)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Println("\nmost recent:")
			for i, j := range recent {
				if i == 10 {
					break
				}
				fmt.Printf("  [%3d%%] %s • %s (%s)\n", j.MatchScore, j.Title, j.Company, j.Location)
			}
		}
		return nil
	},
}
