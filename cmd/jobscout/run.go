package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobscout/internal/alert"
	"jobscout/internal/config"
	"jobscout/internal/logger"
	"jobscout/internal/poll"
	"jobscout/internal/secrets"
	"jobscout/internal/source"
	"jobscout/internal/source/email"
	"jobscout/internal/source/indeed"
	"jobscout/internal/source/linkedin"
	"jobscout/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the watch loop: fetch, filter, score, and alert on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return run()
	},
}

func run() error {
	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(jsonFlag, debugFlag)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// One process owns the store. A second `run` against the same data dir
	// exits instead of racing the first one's writes.
	lock := flock.New(filepath.Join(cfg.App.DataDir, "jobscout.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire data dir lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another jobscout instance is already running against %s", cfg.App.DataDir)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := store.Open(filepath.Join(cfg.App.DataDir, "jobs.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	st, err := store.New(db)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
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

	fetchers, err := buildFetchers(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("jobscout starting",
		zap.String("data_dir", cfg.App.DataDir),
		zap.Int("interval_minutes", cfg.Poll.IntervalMinutes),
		zap.Int("sources", len(fetchers)),
	)

	poller := poll.NewPoller(poll.Deps{
		Fetchers:   fetchers,
		Profile:    cfg.Profile,
		Store:      st,
		Dispatcher: dispatcher,
		Log:        log,
	}, time.Duration(cfg.Poll.IntervalMinutes)*time.Minute)

	err = poller.Run(ctx)
	log.Info("jobscout stopped")
	return err
}

func buildFetchers(cfg config.Config) ([]source.Fetcher, error) {
	var fetchers []source.Fetcher

	if cfg.Sources.LinkedIn.Enabled {
		fetchers = append(fetchers, linkedin.New(linkedin.Config{
			Keywords: cfg.Sources.LinkedIn.Keywords,
			Location: cfg.Sources.LinkedIn.Location,
		}))
	}
	if cfg.Sources.Indeed.Enabled {
		fetchers = append(fetchers, indeed.New(indeed.Config{
			Query:    cfg.Sources.Indeed.Query,
			Location: cfg.Sources.Indeed.Location,
		}))
	}
	if cfg.Sources.Email.Enabled {
		account := secrets.IMAPAccount(cfg.Sources.Email.Username, cfg.Sources.Email.IMAPHost)
		password, err := secrets.GetIMAPPassword(account)
		if err != nil {
			return nil, fmt.Errorf("email source enabled but no password: %w (set one with `jobscout secret set-imap-password`)", err)
		}
		fetchers = append(fetchers, email.New(email.Config{
			Host:        cfg.Sources.Email.IMAPHost,
			Port:        cfg.Sources.Email.IMAPPort,
			Username:    cfg.Sources.Email.Username,
			Password:    password,
			Mailbox:     cfg.Sources.Email.Mailbox,
			MaxMessages: cfg.Sources.Email.MaxMessages,
		}))
	}

	return fetchers, nil
}

// loadValidatedConfig loads the config file and refuses to continue on any
// validation error; warnings go to stderr but don't block.
func loadValidatedConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
		return cfg, fmt.Errorf("config has %d error(s)", len(res.Errors))
	}
	return cfg, nil
}
